package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func adminCaller() *models.Identity {
	return &models.Identity{ID: uuid.New(), Role: models.RoleAdministrator}
}

func validRegistration() RegisterHospitalInput {
	return RegisterHospitalInput{
		Name:               "Crescent Heart Institute",
		Type:               "specialized",
		RegistrationNumber: "REG-2024-0117",
		City:               "Lahore",
		Country:            "Pakistan",
		AdminName:          "Amina Khan",
		AdminTitle:         "Medical Director",
		AdminEmail:         "amina@crescent.example",
		AdminSecret:        "adminpass1",
	}
}

func encodeDocs(t *testing.T, docs models.DocumentSet) []byte {
	t.Helper()
	raw, err := json.Marshal(docs)
	require.NoError(t, err)
	return raw
}

func requiredDocs(kinds ...models.DocumentKind) models.DocumentSet {
	docs := models.DocumentSet{}
	for _, k := range kinds {
		docs[k] = models.HospitalDocument{Ref: "docs/" + string(k) + ".pdf", UploadedAt: time.Now()}
	}
	return docs
}

func TestHospitalRegister_Validation(t *testing.T) {
	_, db := setupMockDB(t)
	svc := NewHospitalService(db)

	tests := []struct {
		name   string
		mutate func(in *RegisterHospitalInput)
		field  string
	}{
		{"missing name", func(in *RegisterHospitalInput) { in.Name = "" }, "name"},
		{"missing registration number", func(in *RegisterHospitalInput) { in.RegistrationNumber = "" }, "registration_number"},
		{"missing admin name", func(in *RegisterHospitalInput) { in.AdminName = "" }, "admin_contact.name"},
		{"bad admin email", func(in *RegisterHospitalInput) { in.AdminEmail = "nope" }, "admin_contact.email"},
		{"short admin secret", func(in *RegisterHospitalInput) { in.AdminSecret = "short" }, "admin_contact.password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRegistration()
			tt.mutate(&input)
			_, err := svc.Register(input)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestHospitalRegister_Success(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewHospitalService(db)

	mock.ExpectQuery(`INSERT INTO "hospitals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))

	input := validRegistration()
	input.Documents = requiredDocs(
		models.DocRegistrationCertificate,
		models.DocHealthDeptLicense,
	)

	hospital, err := svc.Register(input)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, hospital.Status)
	assert.Equal(t, models.TierUnverified, hospital.VerificationTier)
	assert.Equal(t, "amina@crescent.example", hospital.AdminContact.Email)
	assert.NotEqual(t, "adminpass1", hospital.AdminContact.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hospital.AdminContact.Password), []byte("adminpass1")))
	assert.Len(t, hospital.Documents.Data(), 2)
}

func TestHospitalRegister_FullDocumentSetStartsPartiallyVerified(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewHospitalService(db)

	mock.ExpectQuery(`INSERT INTO "hospitals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))

	input := validRegistration()
	input.Documents = requiredDocs(models.RequiredDocumentKinds...)

	hospital, err := svc.Register(input)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, hospital.Status)
	assert.Equal(t, models.TierPartiallyVerified, hospital.VerificationTier)
}

func TestHospitalRegister_DuplicateRegistrationNumber(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewHospitalService(db)

	mock.ExpectQuery(`INSERT INTO "hospitals"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := svc.Register(validRegistration())
	assert.ErrorIs(t, err, ErrDuplicateRegistration)
}

func TestTransition_UnknownTargetStatus(t *testing.T) {
	_, db := setupMockDB(t)
	svc := NewHospitalService(db)

	_, err := svc.Transition(uuid.New(), adminCaller(), TransitionInput{Target: models.HospitalStatus("bogus")})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_HospitalNotFound(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewHospitalService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "hospitals" WHERE id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Transition(uuid.New(), adminCaller(), TransitionInput{Target: models.StatusUnderReview})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransition_IllegalEdge(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewHospitalService(db)
	hospitalID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "hospitals" WHERE id .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "registration_number"}).
			AddRow(hospitalID.String(), "pending", "REG-1"))
	mock.ExpectRollback()

	// Pending must pass through review before approval.
	_, err := svc.Transition(hospitalID, adminCaller(), TransitionInput{Target: models.StatusApproved})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransition_ApproveStampsAuditFields(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewHospitalService(db)
	hospitalID := uuid.New()
	caller := adminCaller()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "hospitals" WHERE id .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "registration_number"}).
			AddRow(hospitalID.String(), "under_review", "REG-1"))
	mock.ExpectExec(`UPDATE "hospitals" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	hospital, err := svc.Transition(hospitalID, caller, TransitionInput{
		Target: models.StatusApproved,
		Note:   "documents check out",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusApproved, hospital.Status)
	require.NotNil(t, hospital.ApprovedBy)
	assert.Equal(t, caller.ID, *hospital.ApprovedBy)
	assert.NotNil(t, hospital.ApprovedAt)

	notes := hospital.Notes.Data()
	require.Len(t, notes, 1)
	assert.Equal(t, "documents check out", notes[0].Text)
	assert.Equal(t, caller.ID, notes[0].AuthorID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransition_RejectRequiresReason(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewHospitalService(db)
	hospitalID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "hospitals" WHERE id .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "registration_number"}).
			AddRow(hospitalID.String(), "under_review", "REG-1"))
	mock.ExpectRollback()

	_, err := svc.Transition(hospitalID, adminCaller(), TransitionInput{Target: models.StatusRejected})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "rejection_reason", verr.Field)
}

func TestTransition_SameStatusReplayKeepsAuditFields(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewHospitalService(db)

	hospitalID := uuid.New()
	originalApprover := uuid.New()
	approvedAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "hospitals" WHERE id .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "registration_number", "approved_by", "approved_at"}).
			AddRow(hospitalID.String(), "approved", "REG-1", originalApprover.String(), approvedAt))
	mock.ExpectExec(`UPDATE "hospitals" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	hospital, err := svc.Transition(hospitalID, adminCaller(), TransitionInput{Target: models.StatusApproved})
	require.NoError(t, err)

	// A replay is a no-op: the original approval stamp survives.
	assert.Equal(t, models.StatusApproved, hospital.Status)
	require.NotNil(t, hospital.ApprovedBy)
	assert.Equal(t, originalApprover, *hospital.ApprovedBy)
	require.NotNil(t, hospital.ApprovedAt)
	assert.True(t, hospital.ApprovedAt.Equal(approvedAt))
}

// The containment needle goes through the JSON encoder, so a quote in the
// filter value reaches the database as valid jsonb.
func TestList_SpecialtyFilterEncodesValue(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewHospitalService(db)

	needle := `["cardio\"logy"]`
	mock.ExpectQuery(`SELECT count\(\*\) FROM "hospitals"`).
		WithArgs(needle).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "hospitals"`).
		WithArgs(needle, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, total, err := svc.List(ListHospitalsInput{Specialty: `cardio"logy`})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDocuments_CompletesTier(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewHospitalService(db)
	hospitalID := uuid.New()

	stored := requiredDocs(
		models.DocRegistrationCertificate,
		models.DocHealthDeptLicense,
		models.DocProofOfOwnership,
		models.DocPractitionersList,
	)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "hospitals" WHERE id .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "registration_number", "verification_tier", "documents"}).
			AddRow(hospitalID.String(), "under_review", "REG-1", "unverified", encodeDocs(t, stored)))
	mock.ExpectExec(`UPDATE "hospitals" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	hospital, err := svc.UpdateDocuments(hospitalID, requiredDocs(
		models.DocTaxRegistration,
		models.DocDataPrivacyPolicy,
	), nil)
	require.NoError(t, err)

	assert.Equal(t, models.TierPartiallyVerified, hospital.VerificationTier)
	assert.Len(t, hospital.Documents.Data(), 6)
}

func TestUpdateDocuments_AdminVerificationYieldsFullTier(t *testing.T) {
	mock, db := setupMockDB(t)
	svc := NewHospitalService(db)
	hospitalID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "hospitals" WHERE id .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "registration_number", "verification_tier", "documents"}).
			AddRow(hospitalID.String(), "approved", "REG-1", "partially_verified", encodeDocs(t, requiredDocs(models.RequiredDocumentKinds...))))
	mock.ExpectExec(`UPDATE "hospitals" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	verified := true
	hospital, err := svc.UpdateDocuments(hospitalID, nil, &verified)
	require.NoError(t, err)
	assert.Equal(t, models.TierFullyVerified, hospital.VerificationTier)
}
