package models

import (
	"encoding/json"
	"fmt"
)

// RoleProfile is the role-specific attribute set attached to an Identity.
// One implementation exists per staff role; the sealed marker keeps the
// union closed so only a matching shape can be stored on an identity.
type RoleProfile interface {
	ProfileRole() Role
	Validate() error

	// Credential returns the jsonb field name and value of the profile's
	// licensing credential. Both are empty for roles without one. License
	// and certification numbers are unique within their role.
	Credential() (field, number string)

	sealedProfile()
}

type DoctorProfile struct {
	Specialty     string `json:"specialty"`
	Department    string `json:"department"`
	LicenseNumber string `json:"license_number"`
	EmployeeID    string `json:"employee_id,omitempty"`
}

func (DoctorProfile) ProfileRole() Role { return RoleDoctor }
func (DoctorProfile) sealedProfile()    {}

func (p DoctorProfile) Credential() (string, string) {
	return "license_number", p.LicenseNumber
}

func (p DoctorProfile) Validate() error {
	switch {
	case p.Specialty == "":
		return &MissingRoleFieldError{Role: RoleDoctor, Field: "specialty"}
	case p.Department == "":
		return &MissingRoleFieldError{Role: RoleDoctor, Field: "department"}
	case p.LicenseNumber == "":
		return &MissingRoleFieldError{Role: RoleDoctor, Field: "license_number"}
	}
	return nil
}

type RadiologistProfile struct {
	LicenseNumber   string   `json:"license_number"`
	Specializations []string `json:"specializations,omitempty"`
}

func (RadiologistProfile) ProfileRole() Role { return RoleRadiologist }
func (RadiologistProfile) sealedProfile()    {}

func (p RadiologistProfile) Credential() (string, string) {
	return "license_number", p.LicenseNumber
}

func (p RadiologistProfile) Validate() error {
	if p.LicenseNumber == "" {
		return &MissingRoleFieldError{Role: RoleRadiologist, Field: "license_number"}
	}
	return nil
}

type LabTechnologistProfile struct {
	CertificationNumber string `json:"certification_number"`
	LabSection          string `json:"lab_section,omitempty"`
}

func (LabTechnologistProfile) ProfileRole() Role { return RoleLabTechnologist }
func (LabTechnologistProfile) sealedProfile()    {}

func (p LabTechnologistProfile) Credential() (string, string) {
	return "certification_number", p.CertificationNumber
}

func (p LabTechnologistProfile) Validate() error {
	if p.CertificationNumber == "" {
		return &MissingRoleFieldError{Role: RoleLabTechnologist, Field: "certification_number"}
	}
	return nil
}

type FrontDeskProfile struct {
	Shift       string `json:"shift"`
	AccessLevel string `json:"access_level,omitempty"`
}

func (FrontDeskProfile) ProfileRole() Role { return RoleFrontDesk }
func (FrontDeskProfile) sealedProfile()    {}
func (FrontDeskProfile) Credential() (string, string) { return "", "" }

func (p FrontDeskProfile) Validate() error {
	if p.Shift == "" {
		return &MissingRoleFieldError{Role: RoleFrontDesk, Field: "shift"}
	}
	return nil
}

type HospitalAdminProfile struct {
	Title string `json:"title,omitempty"`
}

func (HospitalAdminProfile) ProfileRole() Role { return RoleHospitalAdmin }
func (HospitalAdminProfile) sealedProfile()    {}
func (HospitalAdminProfile) Validate() error   { return nil }

func (HospitalAdminProfile) Credential() (string, string) { return "", "" }

// DecodeProfile unmarshals raw variant attributes into the shape matching
// role. Roles without a variant (administrator, pharmacist) decode to nil.
func DecodeProfile(role Role, raw []byte) (RoleProfile, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	var (
		p   RoleProfile
		err error
	)
	switch role {
	case RoleDoctor:
		var v DoctorProfile
		err = json.Unmarshal(raw, &v)
		p = v
	case RoleRadiologist:
		var v RadiologistProfile
		err = json.Unmarshal(raw, &v)
		p = v
	case RoleLabTechnologist:
		var v LabTechnologistProfile
		err = json.Unmarshal(raw, &v)
		p = v
	case RoleFrontDesk:
		var v FrontDeskProfile
		err = json.Unmarshal(raw, &v)
		p = v
	case RoleHospitalAdmin:
		var v HospitalAdminProfile
		err = json.Unmarshal(raw, &v)
		p = v
	case RoleAdministrator, RolePharmacist:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s profile: %w", role, err)
	}
	return p, nil
}
