package visits

import (
	"time"

	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/clinical"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/dto"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/scope"
	"github.com/gofiber/fiber/v2"
)

type VisitHandler struct {
	service *VisitService
}

func NewVisitHandler(service *VisitService) *VisitHandler {
	return &VisitHandler{service: service}
}

type createVisitRequest struct {
	PatientRef string     `json:"patient_ref"`
	Reason     string     `json:"reason"`
	Summary    string     `json:"summary"`
	VisitedAt  *time.Time `json:"visited_at,omitempty"`
}

func (h *VisitHandler) Create(c *fiber.Ctx) error {
	caller, _ := scope.GetIdentity(c)

	var req createVisitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	input := CreateVisitInput{
		PatientRef: req.PatientRef,
		Reason:     req.Reason,
		Summary:    req.Summary,
	}
	if req.VisitedAt != nil {
		input.VisitedAt = *req.VisitedAt
	}

	visit, err := h.service.Create(caller, input)
	if err != nil {
		return c.Status(clinical.ErrorStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(visit)
}

func (h *VisitHandler) List(c *fiber.Ctx) error {
	caller, _ := scope.GetIdentity(c)

	records, err := h.service.ListByHospital(caller)
	if err != nil {
		return c.Status(clinical.ErrorStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(records)
}
