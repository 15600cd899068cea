package clinical

import (
	"testing"

	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allRecordKinds = []RecordKind{KindVisit, KindImaging, KindLabResult, KindProcedure, KindHospitalization}

func affiliated(role models.Role) *models.Identity {
	hospID := uuid.New()
	return &models.Identity{ID: uuid.New(), Role: role, HospitalID: &hospID}
}

func TestAuthorizeWrite_RoleMatrix(t *testing.T) {
	tests := []struct {
		role    models.Role
		kind    RecordKind
		allowed bool
	}{
		{models.RoleDoctor, KindVisit, true},
		{models.RoleDoctor, KindImaging, true},
		{models.RoleDoctor, KindLabResult, true},
		{models.RoleDoctor, KindProcedure, true},
		{models.RoleDoctor, KindHospitalization, true},

		{models.RoleHospitalAdmin, KindVisit, true},
		{models.RoleHospitalAdmin, KindProcedure, true},

		{models.RoleFrontDesk, KindVisit, true},
		{models.RoleFrontDesk, KindHospitalization, true},
		{models.RoleFrontDesk, KindImaging, false},
		{models.RoleFrontDesk, KindLabResult, false},
		{models.RoleFrontDesk, KindProcedure, false},

		{models.RoleRadiologist, KindImaging, true},
		{models.RoleRadiologist, KindVisit, false},
		{models.RoleRadiologist, KindLabResult, false},
		{models.RoleRadiologist, KindProcedure, false},

		{models.RoleLabTechnologist, KindLabResult, true},
		{models.RoleLabTechnologist, KindVisit, false},
		{models.RoleLabTechnologist, KindImaging, false},

		{models.RolePharmacist, KindVisit, false},
		{models.RoleAdministrator, KindVisit, false},
	}

	for _, tt := range tests {
		caller := affiliated(tt.role)
		grant, err := AuthorizeWrite(caller, tt.kind)
		if tt.allowed {
			require.NoError(t, err, "%s should write %s", tt.role, tt.kind)
			assert.Equal(t, caller.ID, grant.AuthorID)
			assert.Equal(t, *caller.HospitalID, grant.HospitalID)
		} else {
			assert.ErrorIs(t, err, ErrRoleNotPermitted, "%s should not write %s", tt.role, tt.kind)
		}
	}
}

func TestAuthorizeWrite_UnaffiliatedDoctorRejectedEverywhere(t *testing.T) {
	caller := &models.Identity{ID: uuid.New(), Role: models.RoleDoctor}
	for _, kind := range allRecordKinds {
		_, err := AuthorizeWrite(caller, kind)
		assert.ErrorIs(t, err, ErrNoHospitalAffiliation, "kind %s", kind)
	}
}

func TestAuthorizeWrite_NilCaller(t *testing.T) {
	for _, kind := range allRecordKinds {
		_, err := AuthorizeWrite(nil, kind)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	}
}

func TestAuthorizeWrite_UnknownKind(t *testing.T) {
	_, err := AuthorizeWrite(affiliated(models.RoleDoctor), RecordKind("prescription"))
	assert.ErrorIs(t, err, ErrUnknownRecordKind)
}

func TestAuthorizeWrite_GrantNeverUsesCallerSuppliedIDs(t *testing.T) {
	caller := affiliated(models.RoleDoctor)
	grant, err := AuthorizeWrite(caller, KindVisit)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, grant.HospitalID)
	assert.NotEqual(t, uuid.Nil, grant.AuthorID)
}
