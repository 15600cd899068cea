package imaging

import (
	"time"

	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/clinical"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/dto"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/scope"
	"github.com/gofiber/fiber/v2"
)

type ImagingHandler struct {
	service *ImagingService
}

func NewImagingHandler(service *ImagingService) *ImagingHandler {
	return &ImagingHandler{service: service}
}

type createStudyRequest struct {
	PatientRef string     `json:"patient_ref"`
	Modality   string     `json:"modality"`
	BodyPart   string     `json:"body_part"`
	ImageRef   string     `json:"image_ref"`
	Impression string     `json:"impression"`
	TakenAt    *time.Time `json:"taken_at,omitempty"`
}

func (h *ImagingHandler) Create(c *fiber.Ctx) error {
	caller, _ := scope.GetIdentity(c)

	var req createStudyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	input := CreateStudyInput{
		PatientRef: req.PatientRef,
		Modality:   req.Modality,
		BodyPart:   req.BodyPart,
		ImageRef:   req.ImageRef,
		Impression: req.Impression,
	}
	if req.TakenAt != nil {
		input.TakenAt = *req.TakenAt
	}

	study, err := h.service.Create(caller, input)
	if err != nil {
		return c.Status(clinical.ErrorStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(study)
}

func (h *ImagingHandler) List(c *fiber.Ctx) error {
	caller, _ := scope.GetIdentity(c)

	records, err := h.service.ListByHospital(caller)
	if err != nil {
		return c.Status(clinical.ErrorStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(records)
}
