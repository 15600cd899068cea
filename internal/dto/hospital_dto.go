package dto

import (
	"time"

	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/models"
	"github.com/google/uuid"
)

type UpdateStatusRequest struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	Note            string `json:"note,omitempty"`
}

type DocumentUpdate struct {
	Ref           string     `json:"ref"`
	LicenseNumber string     `json:"license_number,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

type UpdateDocumentsRequest struct {
	Documents     map[string]DocumentUpdate `json:"documents"`
	AdminVerified *bool                     `json:"admin_verified,omitempty"`
}

// HospitalSummary is the list-view shape: documents and the administrative
// credential are omitted.
type HospitalSummary struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	RegistrationNumber string    `json:"registration_number"`
	City               string    `json:"city"`
	Country            string    `json:"country"`
	Specialties        []string  `json:"specialties"`
	BedCount           int       `json:"bed_count"`
	Status             string    `json:"status"`
	VerificationTier   string    `json:"verification_tier"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"created_at"`
}

func NewHospitalSummary(h *models.Hospital) HospitalSummary {
	return HospitalSummary{
		ID:                 h.ID,
		Name:               h.Name,
		Type:               h.Type,
		RegistrationNumber: h.RegistrationNumber,
		City:               h.City,
		Country:            h.Country,
		Specialties:        h.Specialties,
		BedCount:           h.BedCount,
		Status:             string(h.Status),
		VerificationTier:   string(h.VerificationTier),
		Active:             h.Active,
		CreatedAt:          h.CreatedAt,
	}
}

type HospitalListResponse struct {
	Hospitals []HospitalSummary `json:"hospitals"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
	Limit     int               `json:"limit"`
}
