package visits

import (
	"errors"
	"time"

	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/clinical"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/models"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/scope"
	"gorm.io/gorm"
)

type VisitService struct {
	db *gorm.DB
}

func NewVisitService(db *gorm.DB) *VisitService {
	return &VisitService{db: db}
}

type CreateVisitInput struct {
	PatientRef string
	Reason     string
	Summary    string
	VisitedAt  time.Time
}

func (s *VisitService) Create(caller *models.Identity, input CreateVisitInput) (*Visit, error) {
	grant, err := clinical.AuthorizeWrite(caller, clinical.KindVisit)
	if err != nil {
		return nil, err
	}
	if input.PatientRef == "" {
		return nil, errors.New("patient_ref is required")
	}
	if input.VisitedAt.IsZero() {
		input.VisitedAt = time.Now()
	}

	visit := &Visit{
		HospitalID: grant.HospitalID,
		AuthorID:   grant.AuthorID,
		PatientRef: input.PatientRef,
		Reason:     input.Reason,
		Summary:    input.Summary,
		VisitedAt:  input.VisitedAt,
	}
	if err := s.db.Create(visit).Error; err != nil {
		return nil, err
	}
	return visit, nil
}

func (s *VisitService) ListByHospital(caller *models.Identity) ([]Visit, error) {
	if caller == nil {
		return nil, clinical.ErrUnauthenticated
	}
	if caller.HospitalID == nil {
		return nil, clinical.ErrNoHospitalAffiliation
	}

	var records []Visit
	err := s.db.Scopes(scope.ForHospital(*caller.HospitalID)).
		Order("visited_at DESC").
		Limit(100).
		Find(&records).Error
	return records, err
}
