package services

import (
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/models"
	"gorm.io/gorm"
)

// PersonnelService lets a hospital administrator provision and list staff
// identities bound to their own hospital.
type PersonnelService struct {
	db         *gorm.DB
	identities *IdentityService
}

func NewPersonnelService(db *gorm.DB, identities *IdentityService) *PersonnelService {
	return &PersonnelService{db: db, identities: identities}
}

// AddPersonnel creates a staff identity for the caller's hospital. The new
// identity's affiliation is forced to the caller's hospital id whatever the
// request carried, and provisioned staff skip email verification.
func (s *PersonnelService) AddPersonnel(caller *models.Identity, input CreateIdentityInput) (*models.Identity, error) {
	if caller == nil || caller.Role != models.RoleHospitalAdmin || caller.HospitalID == nil {
		return nil, ErrForbidden
	}
	if !models.IsStaffRole(input.Role) {
		return nil, ErrForbidden
	}

	hospitalID := *caller.HospitalID
	input.HospitalID = &hospitalID
	input.Verified = true

	return s.identities.Create(input)
}

// ListPersonnel returns the staff identities affiliated with the caller's
// hospital. Secret hashes stay out of the payload at the handler layer.
func (s *PersonnelService) ListPersonnel(caller *models.Identity) ([]models.Identity, error) {
	if caller == nil || caller.Role != models.RoleHospitalAdmin || caller.HospitalID == nil {
		return nil, ErrForbidden
	}
	return s.identities.ListByHospital(*caller.HospitalID, models.StaffRoles)
}
