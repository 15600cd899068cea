package imaging

import (
	"errors"
	"time"

	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/clinical"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/models"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/scope"
	"gorm.io/gorm"
)

type ImagingService struct {
	db *gorm.DB
}

func NewImagingService(db *gorm.DB) *ImagingService {
	return &ImagingService{db: db}
}

type CreateStudyInput struct {
	PatientRef string
	Modality   string
	BodyPart   string
	ImageRef   string
	Impression string
	TakenAt    time.Time
}

func (s *ImagingService) Create(caller *models.Identity, input CreateStudyInput) (*ImagingStudy, error) {
	grant, err := clinical.AuthorizeWrite(caller, clinical.KindImaging)
	if err != nil {
		return nil, err
	}
	if input.PatientRef == "" {
		return nil, errors.New("patient_ref is required")
	}
	if input.Modality == "" {
		return nil, errors.New("modality is required")
	}
	if input.TakenAt.IsZero() {
		input.TakenAt = time.Now()
	}

	study := &ImagingStudy{
		HospitalID: grant.HospitalID,
		AuthorID:   grant.AuthorID,
		PatientRef: input.PatientRef,
		Modality:   input.Modality,
		BodyPart:   input.BodyPart,
		ImageRef:   input.ImageRef,
		Impression: input.Impression,
		TakenAt:    input.TakenAt,
	}
	if err := s.db.Create(study).Error; err != nil {
		return nil, err
	}
	return study, nil
}

func (s *ImagingService) ListByHospital(caller *models.Identity) ([]ImagingStudy, error) {
	if caller == nil {
		return nil, clinical.ErrUnauthenticated
	}
	if caller.HospitalID == nil {
		return nil, clinical.ErrNoHospitalAffiliation
	}

	var records []ImagingStudy
	err := s.db.Scopes(scope.ForHospital(*caller.HospitalID)).
		Order("taken_at DESC").
		Limit(100).
		Find(&records).Error
	return records, err
}
