package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/services"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newHospitalApp(t *testing.T) (sqlmock.Sqlmock, *fiber.App) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	h := NewHospitalHandler(services.NewHospitalService(db), store)
	app := fiber.New()
	app.Post("/api/hospitals", h.Register)
	return mock, app
}

func postRegistration(t *testing.T, app *fiber.App, fields map[string]string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/hospitals", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func registrationFields() map[string]string {
	return map[string]string{
		"name":                "Crescent Heart Institute",
		"registration_number": "REG-2024-0117",
		"admin_name":          "Amina Khan",
		"admin_email":         "amina@crescent.example",
		"admin_password":      "adminpass1",
	}
}

// A reused registration number is a validation failure, not a conflict.
func TestRegister_DuplicateRegistrationNumberRejected(t *testing.T) {
	mock, app := newHospitalApp(t)
	mock.ExpectQuery(`INSERT INTO "hospitals"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	resp := postRegistration(t, app, registrationFields())
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegister_MissingAdminContact(t *testing.T) {
	_, app := newHospitalApp(t)

	fields := registrationFields()
	delete(fields, "admin_email")

	resp := postRegistration(t, app, fields)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
