package labresults

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LabResult is one laboratory report. Values holds the analyte readings as
// a free-form document; the platform does not interpret them.
type LabResult struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	HospitalID uuid.UUID      `gorm:"type:uuid;not null;index" json:"hospital_id"`
	AuthorID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
	PatientRef string         `gorm:"size:100;not null" json:"patient_ref"`
	TestName   string         `gorm:"size:255;not null" json:"test_name"`
	Values     datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"values"`
	ReportRef  string         `gorm:"size:512" json:"report_ref"`
	SampledAt  time.Time      `json:"sampled_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
