package imaging

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImagingStudy is one radiology record. The image payload lives in external
// storage; only its reference is kept here.
type ImagingStudy struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	HospitalID uuid.UUID      `gorm:"type:uuid;not null;index" json:"hospital_id"`
	AuthorID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
	PatientRef string         `gorm:"size:100;not null" json:"patient_ref"`
	Modality   string         `gorm:"size:30;not null" json:"modality"`
	BodyPart   string         `gorm:"size:100" json:"body_part"`
	ImageRef   string         `gorm:"size:512" json:"image_ref"`
	Impression string         `gorm:"type:text" json:"impression"`
	TakenAt    time.Time      `json:"taken_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
