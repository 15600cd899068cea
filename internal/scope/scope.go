package scope

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForHospital returns a GORM scope that filters by hospital affiliation.
func ForHospital(hospitalID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("hospital_id = ?", hospitalID)
	}
}
