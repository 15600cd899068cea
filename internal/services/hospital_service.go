package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HospitalService struct {
	db *gorm.DB
}

func NewHospitalService(db *gorm.DB) *HospitalService {
	return &HospitalService{db: db}
}

// RegisterHospitalInput is one hospital application: profile, contact, the
// embedded administrative credential and the initial document set.
type RegisterHospitalInput struct {
	Name               string
	Type               string
	RegistrationNumber string
	FoundedYear        int
	BedCount           int
	Specialties        []string
	OwnershipType      string

	Street     string
	City       string
	State      string
	Country    string
	PostalCode string
	Latitude   float64
	Longitude  float64

	Phone   string
	Email   string
	Website string

	AdminName     string
	AdminTitle    string
	AdminEmail    string
	AdminSecret   string
	AdminIDDocRef string

	Documents models.DocumentSet
}

// Register creates a hospital registration in Pending with its verification
// tier derived from the submitted documents.
func (s *HospitalService) Register(input RegisterHospitalInput) (*models.Hospital, error) {
	switch {
	case input.Name == "":
		return nil, validationErr("name", "is required")
	case input.RegistrationNumber == "":
		return nil, validationErr("registration_number", "is required")
	case input.AdminName == "":
		return nil, validationErr("admin_contact.name", "is required")
	case input.AdminEmail == "" || !emailPattern.MatchString(NormalizeContact(input.AdminEmail)):
		return nil, validationErr("admin_contact.email", "a valid contact address is required")
	case len(input.AdminSecret) < 8:
		return nil, validationErr("admin_contact.password", "must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.AdminSecret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	hospital := models.Hospital{
		ID:                 uuid.New(),
		Name:               input.Name,
		Type:               input.Type,
		RegistrationNumber: input.RegistrationNumber,
		FoundedYear:        input.FoundedYear,
		BedCount:           input.BedCount,
		Specialties:        datatypes.NewJSONSlice(input.Specialties),
		OwnershipType:      input.OwnershipType,
		Street:             input.Street,
		City:               input.City,
		State:              input.State,
		Country:            input.Country,
		PostalCode:         input.PostalCode,
		Latitude:           input.Latitude,
		Longitude:          input.Longitude,
		Phone:              input.Phone,
		Email:              input.Email,
		Website:            input.Website,
		AdminContact: models.AdminContact{
			Name:          input.AdminName,
			Title:         input.AdminTitle,
			Email:         NormalizeContact(input.AdminEmail),
			Password:      string(hash),
			IDDocumentRef: input.AdminIDDocRef,
		},
		Status: models.StatusPending,
		Active: true,
	}
	hospital.MergeDocuments(input.Documents)

	if err := s.db.Create(&hospital).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateRegistration
		}
		return nil, fmt.Errorf("failed to create hospital: %w", err)
	}

	return &hospital, nil
}

// TransitionInput carries one approval-status change request.
type TransitionInput struct {
	Target          models.HospitalStatus
	RejectionReason string
	Note            string
}

// Transition applies one status change under a row lock so the source
// status is re-checked atomically with the write. A same-status replay is
// a no-op apart from an optional note.
func (s *HospitalService) Transition(hospitalID uuid.UUID, caller *models.Identity, input TransitionInput) (*models.Hospital, error) {
	if !models.ValidStatus(input.Target) {
		return nil, ErrInvalidTransition
	}

	var hospital models.Hospital
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&hospital, "id = ?", hospitalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if !models.CanTransition(hospital.Status, input.Target) {
			return ErrInvalidTransition
		}

		now := time.Now()
		if input.Target != hospital.Status {
			switch input.Target {
			case models.StatusApproved:
				// Prior rejection reasons are kept for audit.
				hospital.ApprovedAt = &now
				id := caller.ID
				hospital.ApprovedBy = &id
			case models.StatusRejected:
				if input.RejectionReason == "" {
					return validationErr("rejection_reason", "is required when rejecting")
				}
				hospital.RejectionReason = input.RejectionReason
			}
			hospital.Status = input.Target
		}

		if input.Note != "" {
			hospital.AppendNote(input.Note, caller.ID, now)
		}

		return tx.Save(&hospital).Error
	})
	if err != nil {
		return nil, err
	}

	slog.Info("hospital status transition",
		"action", "hospital_status_transition",
		"hospital_id", hospital.ID.String(),
		"identity_id", caller.ID.String(),
		"status", string(hospital.Status))

	return &hospital, nil
}

// UpdateDocuments merges document references into the stored map and
// recomputes the verification tier. setAdminVerified records the explicit
// full-verification action when non-nil.
func (s *HospitalService) UpdateDocuments(hospitalID uuid.UUID, updates models.DocumentSet, setAdminVerified *bool) (*models.Hospital, error) {
	var hospital models.Hospital
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&hospital, "id = ?", hospitalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if setAdminVerified != nil {
			hospital.AdminVerified = *setAdminVerified
		}
		hospital.MergeDocuments(updates)

		return tx.Save(&hospital).Error
	})
	if err != nil {
		return nil, err
	}
	return &hospital, nil
}

// ListHospitalsInput filters the hospital directory.
type ListHospitalsInput struct {
	Status    models.HospitalStatus
	City      string
	Specialty string
	Search    string
	Page      int
	Limit     int
}

func (s *HospitalService) List(input ListHospitalsInput) ([]models.Hospital, int64, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 || input.Limit > 100 {
		input.Limit = 20
	}
	offset := (input.Page - 1) * input.Limit

	query := s.db.Model(&models.Hospital{})
	if input.Status != "" {
		query = query.Where("status = ?", input.Status)
	}
	if input.City != "" {
		query = query.Where("city = ?", input.City)
	}
	if input.Specialty != "" {
		// jsonb containment; the needle goes through the encoder so a
		// quote in the value cannot break the literal.
		needle, _ := json.Marshal([]string{input.Specialty})
		query = query.Where("specialties @> ?", string(needle))
	}
	if input.Search != "" {
		query = query.Where("name ILIKE ?", "%"+input.Search+"%")
	}

	var total int64
	query.Count(&total)

	var hospitals []models.Hospital
	err := query.Order("created_at DESC").
		Offset(offset).
		Limit(input.Limit).
		Find(&hospitals).Error
	if err != nil {
		return nil, 0, err
	}

	return hospitals, total, nil
}

func (s *HospitalService) GetByID(id uuid.UUID) (*models.Hospital, error) {
	var hospital models.Hospital
	if err := s.db.First(&hospital, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &hospital, nil
}
