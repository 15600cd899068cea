package clinical

import (
	"errors"

	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/models"
	"github.com/google/uuid"
)

// RecordKind identifies one clinical record type gated by the write check.
type RecordKind string

const (
	KindVisit           RecordKind = "visit"
	KindImaging         RecordKind = "imaging"
	KindLabResult       RecordKind = "lab_result"
	KindProcedure       RecordKind = "procedure"
	KindHospitalization RecordKind = "hospitalization"
)

var (
	ErrUnauthenticated       = errors.New("caller is not authenticated")
	ErrNoHospitalAffiliation = errors.New("caller has no hospital affiliation")
	ErrRoleNotPermitted      = errors.New("role not permitted for this record kind")
	ErrUnknownRecordKind     = errors.New("unknown record kind")
)

// permittedRoles declares, per record kind, which roles may create it.
var permittedRoles = map[RecordKind][]models.Role{
	KindVisit:           {models.RoleDoctor, models.RoleHospitalAdmin, models.RoleFrontDesk},
	KindImaging:         {models.RoleRadiologist, models.RoleDoctor, models.RoleHospitalAdmin},
	KindLabResult:       {models.RoleLabTechnologist, models.RoleDoctor, models.RoleHospitalAdmin},
	KindProcedure:       {models.RoleDoctor, models.RoleHospitalAdmin},
	KindHospitalization: {models.RoleDoctor, models.RoleHospitalAdmin, models.RoleFrontDesk},
}

// WriteGrant carries the ids a record service must stamp onto the new
// record. Client-supplied hospital or author ids are never accepted.
type WriteGrant struct {
	HospitalID uuid.UUID
	AuthorID   uuid.UUID
}

// AuthorizeWrite is the shared gate every clinical-record creation path
// runs: authenticated, hospital-affiliated, role-permitted, in that order.
func AuthorizeWrite(caller *models.Identity, kind RecordKind) (WriteGrant, error) {
	roles, ok := permittedRoles[kind]
	if !ok {
		return WriteGrant{}, ErrUnknownRecordKind
	}
	if caller == nil {
		return WriteGrant{}, ErrUnauthenticated
	}
	if caller.HospitalID == nil {
		return WriteGrant{}, ErrNoHospitalAffiliation
	}
	for _, r := range roles {
		if caller.Role == r {
			return WriteGrant{HospitalID: *caller.HospitalID, AuthorID: caller.ID}, nil
		}
	}
	return WriteGrant{}, ErrRoleNotPermitted
}
