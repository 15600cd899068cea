package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name         string
		profile      RoleProfile
		missingField string
	}{
		{
			name:    "complete doctor",
			profile: DoctorProfile{Specialty: "cardiology", Department: "cardiology", LicenseNumber: "MD-100"},
		},
		{
			name:         "doctor without specialty",
			profile:      DoctorProfile{Department: "cardiology", LicenseNumber: "MD-100"},
			missingField: "specialty",
		},
		{
			name:         "doctor without department",
			profile:      DoctorProfile{Specialty: "cardiology", LicenseNumber: "MD-100"},
			missingField: "department",
		},
		{
			name:         "doctor without license",
			profile:      DoctorProfile{Specialty: "cardiology", Department: "cardiology"},
			missingField: "license_number",
		},
		{
			name:    "complete radiologist",
			profile: RadiologistProfile{LicenseNumber: "RAD-7"},
		},
		{
			name:         "radiologist without license",
			profile:      RadiologistProfile{Specializations: []string{"mri"}},
			missingField: "license_number",
		},
		{
			name:         "lab technologist without certification",
			profile:      LabTechnologistProfile{LabSection: "hematology"},
			missingField: "certification_number",
		},
		{
			name:         "front desk without shift",
			profile:      FrontDeskProfile{AccessLevel: "basic"},
			missingField: "shift",
		},
		{
			name:    "hospital admin has no required fields",
			profile: HospitalAdminProfile{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.missingField == "" {
				assert.NoError(t, err)
				return
			}
			var missing *MissingRoleFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.missingField, missing.Field)
			assert.Equal(t, tt.profile.ProfileRole(), missing.Role)
		})
	}
}

func TestDecodeProfile(t *testing.T) {
	p, err := DecodeProfile(RoleDoctor, []byte(`{"specialty":"cardiology","department":"cardiology","license_number":"MD-1"}`))
	require.NoError(t, err)
	doc, ok := p.(DoctorProfile)
	require.True(t, ok)
	assert.Equal(t, "cardiology", doc.Specialty)
	assert.Equal(t, RoleDoctor, p.ProfileRole())

	p, err = DecodeProfile(RoleRadiologist, []byte(`{"license_number":"RAD-1","specializations":["ct","mri"]}`))
	require.NoError(t, err)
	rad, ok := p.(RadiologistProfile)
	require.True(t, ok)
	assert.Equal(t, []string{"ct", "mri"}, rad.Specializations)
}

func TestDecodeProfile_RolesWithoutVariant(t *testing.T) {
	for _, role := range []Role{RoleAdministrator, RolePharmacist} {
		p, err := DecodeProfile(role, []byte(`{"anything":"ignored"}`))
		assert.NoError(t, err)
		assert.Nil(t, p)
	}
}

func TestDecodeProfile_UnknownRole(t *testing.T) {
	_, err := DecodeProfile(Role("janitor"), nil)
	assert.Error(t, err)
}

func TestIdentitySetProfile_RoleMismatch(t *testing.T) {
	id := &Identity{Role: RoleDoctor}
	err := id.SetProfile(RadiologistProfile{LicenseNumber: "RAD-1"})
	assert.Error(t, err)
}

func TestIdentitySetProfile_RejectsIncomplete(t *testing.T) {
	id := &Identity{Role: RoleDoctor}
	err := id.SetProfile(DoctorProfile{Specialty: "cardiology"})
	var missing *MissingRoleFieldError
	assert.True(t, errors.As(err, &missing))
}

func TestIdentitySetProfile_RoundTrip(t *testing.T) {
	id := &Identity{Role: RoleLabTechnologist}
	require.NoError(t, id.SetProfile(LabTechnologistProfile{CertificationNumber: "CLT-42", LabSection: "hematology"}))

	p, err := id.RoleProfile()
	require.NoError(t, err)
	lab, ok := p.(LabTechnologistProfile)
	require.True(t, ok)
	assert.Equal(t, "CLT-42", lab.CertificationNumber)
	assert.Equal(t, "hematology", lab.LabSection)
}

func TestIdentitySetProfile_NilClearsToEmptyObject(t *testing.T) {
	id := &Identity{Role: RoleAdministrator}
	require.NoError(t, id.SetProfile(nil))
	assert.Equal(t, "{}", string(id.Profile))
}

func TestProfileCredential(t *testing.T) {
	tests := []struct {
		profile RoleProfile
		field   string
		number  string
	}{
		{DoctorProfile{LicenseNumber: "MD-1"}, "license_number", "MD-1"},
		{RadiologistProfile{LicenseNumber: "RAD-7"}, "license_number", "RAD-7"},
		{LabTechnologistProfile{CertificationNumber: "CLT-42"}, "certification_number", "CLT-42"},
		{FrontDeskProfile{Shift: "night"}, "", ""},
		{HospitalAdminProfile{Title: "Director"}, "", ""},
	}
	for _, tt := range tests {
		field, number := tt.profile.Credential()
		assert.Equal(t, tt.field, field, "%T", tt.profile)
		assert.Equal(t, tt.number, number, "%T", tt.profile)
	}
}

func TestRoleSubsets(t *testing.T) {
	assert.True(t, IsStaffRole(RoleDoctor))
	assert.True(t, IsStaffRole(RoleFrontDesk))
	assert.False(t, IsStaffRole(RoleHospitalAdmin))
	assert.False(t, IsStaffRole(RolePharmacist))

	assert.True(t, HospitalAffiliated(RoleHospitalAdmin))
	assert.True(t, HospitalAffiliated(RoleLabTechnologist))
	assert.False(t, HospitalAffiliated(RoleAdministrator))
	assert.False(t, HospitalAffiliated(RolePharmacist))

	assert.True(t, ValidRole(RoleRadiologist))
	assert.False(t, ValidRole(Role("janitor")))
}
