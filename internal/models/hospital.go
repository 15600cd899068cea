package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// HospitalStatus is the approval state of a hospital registration.
type HospitalStatus string

const (
	StatusPending     HospitalStatus = "pending"
	StatusUnderReview HospitalStatus = "under_review"
	StatusApproved    HospitalStatus = "approved"
	StatusRejected    HospitalStatus = "rejected"
	StatusSuspended   HospitalStatus = "suspended"
)

func ValidStatus(s HospitalStatus) bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected, StatusSuspended:
		return true
	}
	return false
}

// statusTransitions is the strict transition table. Self-transitions are
// always legal (idempotent replay) and handled by CanTransition directly.
var statusTransitions = map[HospitalStatus][]HospitalStatus{
	StatusPending:     {StatusUnderReview},
	StatusUnderReview: {StatusPending, StatusApproved, StatusRejected, StatusSuspended},
	StatusApproved:    {StatusSuspended},
	StatusSuspended:   {StatusApproved, StatusUnderReview},
	StatusRejected:    {StatusUnderReview, StatusPending},
}

// CanTransition reports whether moving from one approval status to another
// is permitted. Every state can be revisited; there is no terminal state.
func CanTransition(from, to HospitalStatus) bool {
	if !ValidStatus(from) || !ValidStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	for _, t := range statusTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// VerificationTier is the derived completeness rating of a hospital's
// supporting documents. Never set directly; see RecomputeVerification.
type VerificationTier string

const (
	TierUnverified        VerificationTier = "unverified"
	TierPartiallyVerified VerificationTier = "partially_verified"
	TierFullyVerified     VerificationTier = "fully_verified"
)

// DocumentKind keys the hospital documents map.
type DocumentKind string

const (
	DocRegistrationCertificate DocumentKind = "registration_certificate"
	DocHealthDeptLicense       DocumentKind = "health_department_license"
	DocProofOfOwnership        DocumentKind = "proof_of_ownership"
	DocPractitionersList       DocumentKind = "practitioners_list"
	DocTaxRegistration         DocumentKind = "tax_registration"
	DocDataPrivacyPolicy       DocumentKind = "data_privacy_policy"

	// Optional supporting material, not counted toward verification.
	DocFacilityPhotos DocumentKind = "facility_photos"
	DocAccreditation  DocumentKind = "accreditation"
)

// RequiredDocumentKinds must all be present for a hospital to rank above
// Unverified.
var RequiredDocumentKinds = []DocumentKind{
	DocRegistrationCertificate,
	DocHealthDeptLicense,
	DocProofOfOwnership,
	DocPractitionersList,
	DocTaxRegistration,
	DocDataPrivacyPolicy,
}

// HospitalDocument is one uploaded supporting document. Ref is the opaque
// storage reference; the platform never inspects file bytes.
type HospitalDocument struct {
	Ref           string     `json:"ref"`
	UploadedAt    time.Time  `json:"uploaded_at"`
	LicenseNumber string     `json:"license_number,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

type DocumentSet map[DocumentKind]HospitalDocument

// HospitalNote is one entry of the append-only review log.
type HospitalNote struct {
	Text      string    `json:"text"`
	AuthorID  uuid.UUID `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminContact is the pre-identity credential embedded in a registration.
// A hospital_admin Identity is materialized from it on first bootstrap login.
type AdminContact struct {
	Name          string `gorm:"size:255" json:"name"`
	Title         string `gorm:"size:100" json:"title"`
	Email         string `gorm:"size:255;index" json:"email"`
	Password      string `gorm:"size:100" json:"-"`
	IDDocumentRef string `gorm:"size:512" json:"-"`
}

// Hospital is one applying hospital's registration record.
type Hospital struct {
	ID                 uuid.UUID                  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name               string                     `gorm:"size:255;not null;index" json:"name"`
	Type               string                     `gorm:"size:50" json:"type"`
	RegistrationNumber string                     `gorm:"size:100;not null;uniqueIndex" json:"registration_number"`
	FoundedYear        int                        `json:"founded_year"`
	BedCount           int                        `json:"bed_count"`
	Specialties        datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"specialties"`
	OwnershipType      string                     `gorm:"size:50" json:"ownership_type"`

	Street     string  `gorm:"size:255" json:"street"`
	City       string  `gorm:"size:100;index" json:"city"`
	State      string  `gorm:"size:100" json:"state"`
	Country    string  `gorm:"size:100" json:"country"`
	PostalCode string  `gorm:"size:20" json:"postal_code"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`

	Phone   string `gorm:"size:50" json:"phone"`
	Email   string `gorm:"size:255" json:"email"`
	Website string `gorm:"size:255" json:"website"`

	AdminContact AdminContact `gorm:"embedded;embeddedPrefix:admin_" json:"admin_contact"`

	Documents datatypes.JSONType[DocumentSet] `gorm:"type:jsonb" json:"documents"`

	Status HospitalStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Active bool           `gorm:"default:true" json:"active"`

	VerificationTier VerificationTier `gorm:"size:30;not null;default:'unverified'" json:"verification_tier"`
	// AdminVerified records the explicit administrative full-verification
	// action; document completeness alone never yields the full tier.
	AdminVerified bool `gorm:"default:false" json:"admin_verified"`

	ApprovedBy      *uuid.UUID `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason,omitempty"`

	Notes datatypes.JSONType[[]HospitalNote] `gorm:"type:jsonb" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Hospital) TableName() string { return "hospitals" }

// RequiredDocumentsPresent reports whether every required kind carries a
// non-empty storage reference.
func (h *Hospital) RequiredDocumentsPresent() bool {
	docs := h.Documents.Data()
	for _, kind := range RequiredDocumentKinds {
		if doc, ok := docs[kind]; !ok || doc.Ref == "" {
			return false
		}
	}
	return true
}

// RecomputeVerification derives the verification tier from the documents
// map. This is the only code path allowed to write the tier.
func (h *Hospital) RecomputeVerification() {
	switch {
	case !h.RequiredDocumentsPresent():
		h.VerificationTier = TierUnverified
	case h.AdminVerified:
		h.VerificationTier = TierFullyVerified
	default:
		h.VerificationTier = TierPartiallyVerified
	}
}

// MergeDocuments overlays updates onto the stored documents map and
// recomputes the verification tier.
func (h *Hospital) MergeDocuments(updates DocumentSet) {
	docs := h.Documents.Data()
	if docs == nil {
		docs = DocumentSet{}
	}
	for kind, doc := range updates {
		docs[kind] = doc
	}
	h.Documents = datatypes.NewJSONType(docs)
	h.RecomputeVerification()
}

// AppendNote adds one entry to the append-only notes log.
func (h *Hospital) AppendNote(text string, author uuid.UUID, at time.Time) {
	notes := h.Notes.Data()
	notes = append(notes, HospitalNote{Text: text, AuthorID: author, CreatedAt: at})
	h.Notes = datatypes.NewJSONType(notes)
}
