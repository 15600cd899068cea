package labresults

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/clinical"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/models"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/scope"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LabResultService struct {
	db *gorm.DB
}

func NewLabResultService(db *gorm.DB) *LabResultService {
	return &LabResultService{db: db}
}

type CreateLabResultInput struct {
	PatientRef string
	TestName   string
	Values     map[string]any
	ReportRef  string
	SampledAt  time.Time
}

func (s *LabResultService) Create(caller *models.Identity, input CreateLabResultInput) (*LabResult, error) {
	grant, err := clinical.AuthorizeWrite(caller, clinical.KindLabResult)
	if err != nil {
		return nil, err
	}
	if input.PatientRef == "" {
		return nil, errors.New("patient_ref is required")
	}
	if input.TestName == "" {
		return nil, errors.New("test_name is required")
	}
	if input.SampledAt.IsZero() {
		input.SampledAt = time.Now()
	}

	values := datatypes.JSON([]byte("{}"))
	if len(input.Values) > 0 {
		raw, err := json.Marshal(input.Values)
		if err != nil {
			return nil, errors.New("values must be a JSON object")
		}
		values = datatypes.JSON(raw)
	}

	result := &LabResult{
		HospitalID: grant.HospitalID,
		AuthorID:   grant.AuthorID,
		PatientRef: input.PatientRef,
		TestName:   input.TestName,
		Values:     values,
		ReportRef:  input.ReportRef,
		SampledAt:  input.SampledAt,
	}
	if err := s.db.Create(result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (s *LabResultService) ListByHospital(caller *models.Identity) ([]LabResult, error) {
	if caller == nil {
		return nil, clinical.ErrUnauthenticated
	}
	if caller.HospitalID == nil {
		return nil, clinical.ErrNoHospitalAffiliation
	}

	var records []LabResult
	err := s.db.Scopes(scope.ForHospital(*caller.HospitalID)).
		Order("sampled_at DESC").
		Limit(100).
		Find(&records).Error
	return records, err
}
