package visits

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Visit is one outpatient visit record. HospitalID and AuthorID are always
// stamped from the write grant, never taken from the request.
type Visit struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	HospitalID uuid.UUID      `gorm:"type:uuid;not null;index" json:"hospital_id"`
	AuthorID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
	PatientRef string         `gorm:"size:100;not null" json:"patient_ref"`
	Reason     string         `gorm:"type:text" json:"reason"`
	Summary    string         `gorm:"type:text" json:"summary"`
	VisitedAt  time.Time      `json:"visited_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
