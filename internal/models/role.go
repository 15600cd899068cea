package models

import "fmt"

// Role is the closed set of principal kinds able to authenticate.
type Role string

const (
	RoleAdministrator   Role = "administrator"
	RolePharmacist      Role = "pharmacist"
	RoleHospitalAdmin   Role = "hospital_admin"
	RoleRadiologist     Role = "radiologist"
	RoleLabTechnologist Role = "lab_technologist"
	RoleDoctor          Role = "doctor"
	RoleFrontDesk       Role = "front_desk"
)

var allRoles = map[Role]bool{
	RoleAdministrator:   true,
	RolePharmacist:      true,
	RoleHospitalAdmin:   true,
	RoleRadiologist:     true,
	RoleLabTechnologist: true,
	RoleDoctor:          true,
	RoleFrontDesk:       true,
}

// StaffRoles is the subset a hospital admin may provision.
var StaffRoles = []Role{RoleDoctor, RoleRadiologist, RoleLabTechnologist, RoleFrontDesk}

func ValidRole(r Role) bool { return allRoles[r] }

func IsStaffRole(r Role) bool {
	for _, s := range StaffRoles {
		if s == r {
			return true
		}
	}
	return false
}

// HospitalAffiliated reports whether identities with this role carry a
// hospital reference. Platform administrators and pharmacists do not.
func HospitalAffiliated(r Role) bool {
	return r != RoleAdministrator && r != RolePharmacist
}

// MissingRoleFieldError names the required role-specific field absent at
// identity creation.
type MissingRoleFieldError struct {
	Role  Role
	Field string
}

func (e *MissingRoleFieldError) Error() string {
	return fmt.Sprintf("%s requires field %q", e.Role, e.Field)
}
