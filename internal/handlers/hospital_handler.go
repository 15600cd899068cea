package handlers

import (
	"errors"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/dto"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/models"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/scope"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/services"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// documentFields are the multipart file-field names accepted at
// registration, one per document kind.
var documentFields = []models.DocumentKind{
	models.DocRegistrationCertificate,
	models.DocHealthDeptLicense,
	models.DocProofOfOwnership,
	models.DocPractitionersList,
	models.DocTaxRegistration,
	models.DocDataPrivacyPolicy,
	models.DocFacilityPhotos,
	models.DocAccreditation,
}

type HospitalHandler struct {
	service *services.HospitalService
	store   storage.DocumentStore
}

func NewHospitalHandler(service *services.HospitalService, store storage.DocumentStore) *HospitalHandler {
	return &HospitalHandler{service: service, store: store}
}

// Register accepts a multipart application: profile fields plus one file
// per document kind.
func (h *HospitalHandler) Register(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "Expected multipart form data")
	}

	input := services.RegisterHospitalInput{
		Name:               c.FormValue("name"),
		Type:               c.FormValue("type"),
		RegistrationNumber: c.FormValue("registration_number"),
		FoundedYear:        atoiOrZero(c.FormValue("founded_year")),
		BedCount:           atoiOrZero(c.FormValue("bed_count")),
		Specialties:        splitCSV(c.FormValue("specialties")),
		OwnershipType:      c.FormValue("ownership_type"),
		Street:             c.FormValue("street"),
		City:               c.FormValue("city"),
		State:              c.FormValue("state"),
		Country:            c.FormValue("country"),
		PostalCode:         c.FormValue("postal_code"),
		Latitude:           atofOrZero(c.FormValue("latitude")),
		Longitude:          atofOrZero(c.FormValue("longitude")),
		Phone:              c.FormValue("phone"),
		Email:              c.FormValue("email"),
		Website:            c.FormValue("website"),
		AdminName:          c.FormValue("admin_name"),
		AdminTitle:         c.FormValue("admin_title"),
		AdminEmail:         c.FormValue("admin_email"),
		AdminSecret:        c.FormValue("admin_password"),
	}

	docs, err := h.saveDocuments(c, form)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to store documents",
		})
	}
	input.Documents = docs

	if idDoc, ok := docs["admin_id_document"]; ok {
		input.AdminIDDocRef = idDoc.Ref
		delete(docs, "admin_id_document")
	}

	hospital, err := h.service.Register(input)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrDuplicateRegistration), errors.As(err, &verr):
			return badRequest(c, err.Error())
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(hospital)
}

func (h *HospitalHandler) saveDocuments(c *fiber.Ctx, form *multipart.Form) (models.DocumentSet, error) {
	docs := models.DocumentSet{}
	now := time.Now()

	fields := make([]string, 0, len(documentFields)+1)
	for _, kind := range documentFields {
		fields = append(fields, string(kind))
	}
	fields = append(fields, "admin_id_document")

	for _, field := range fields {
		files := form.File[field]
		if len(files) == 0 {
			continue
		}
		f, err := files[0].Open()
		if err != nil {
			return nil, err
		}
		ref, err := h.store.Save(field, files[0].Filename, f)
		f.Close()
		if err != nil {
			return nil, err
		}

		doc := models.HospitalDocument{
			Ref:           ref,
			UploadedAt:    now,
			LicenseNumber: c.FormValue(field + "_license_number"),
		}
		docs[models.DocumentKind(field)] = doc
	}
	return docs, nil
}

func (h *HospitalHandler) List(c *fiber.Ctx) error {
	input := services.ListHospitalsInput{
		Status:    models.HospitalStatus(c.Query("status")),
		City:      c.Query("city"),
		Specialty: c.Query("specialty"),
		Search:    c.Query("search"),
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", 20),
	}

	if input.Status != "" && !models.ValidStatus(input.Status) {
		return badRequest(c, "Unknown status filter")
	}

	hospitals, total, err := h.service.List(input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	out := make([]dto.HospitalSummary, 0, len(hospitals))
	for i := range hospitals {
		out = append(out, dto.NewHospitalSummary(&hospitals[i]))
	}

	return c.JSON(dto.HospitalListResponse{
		Hospitals: out,
		Total:     total,
		Page:      input.Page,
		Limit:     input.Limit,
	})
}

func (h *HospitalHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid hospital id")
	}

	hospital, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Hospital not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(hospital)
}

func (h *HospitalHandler) UpdateStatus(c *fiber.Ctx) error {
	caller, ok := scope.GetIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid hospital id")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	hospital, err := h.service.Transition(id, caller, services.TransitionInput{
		Target:          models.HospitalStatus(req.Status),
		RejectionReason: req.RejectionReason,
		Note:            req.Note,
	})
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Hospital not found",
			})
		case errors.Is(err, services.ErrInvalidTransition), errors.As(err, &verr):
			return badRequest(c, err.Error())
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(hospital)
}

func (h *HospitalHandler) UpdateDocuments(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid hospital id")
	}

	var req dto.UpdateDocumentsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	updates := models.DocumentSet{}
	now := time.Now()
	for kind, doc := range req.Documents {
		updates[models.DocumentKind(kind)] = models.HospitalDocument{
			Ref:           doc.Ref,
			UploadedAt:    now,
			LicenseNumber: doc.LicenseNumber,
			ExpiresAt:     doc.ExpiresAt,
		}
	}

	hospital, err := h.service.UpdateDocuments(id, updates, req.AdminVerified)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Hospital not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(hospital)
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atofOrZero(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
