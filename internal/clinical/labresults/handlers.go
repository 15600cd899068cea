package labresults

import (
	"time"

	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/clinical"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/dto"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/scope"
	"github.com/gofiber/fiber/v2"
)

type LabResultHandler struct {
	service *LabResultService
}

func NewLabResultHandler(service *LabResultService) *LabResultHandler {
	return &LabResultHandler{service: service}
}

type createLabResultRequest struct {
	PatientRef string         `json:"patient_ref"`
	TestName   string         `json:"test_name"`
	Values     map[string]any `json:"values,omitempty"`
	ReportRef  string         `json:"report_ref,omitempty"`
	SampledAt  *time.Time     `json:"sampled_at,omitempty"`
}

func (h *LabResultHandler) Create(c *fiber.Ctx) error {
	caller, _ := scope.GetIdentity(c)

	var req createLabResultRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	input := CreateLabResultInput{
		PatientRef: req.PatientRef,
		TestName:   req.TestName,
		Values:     req.Values,
		ReportRef:  req.ReportRef,
	}
	if req.SampledAt != nil {
		input.SampledAt = *req.SampledAt
	}

	result, err := h.service.Create(caller, input)
	if err != nil {
		return c.Status(clinical.ErrorStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *LabResultHandler) List(c *fiber.Ctx) error {
	caller, _ := scope.GetIdentity(c)

	records, err := h.service.ListByHospital(caller)
	if err != nil {
		return c.Status(clinical.ErrorStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(records)
}
