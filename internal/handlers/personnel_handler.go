package handlers

import (
	"errors"

	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/dto"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/models"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/scope"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PersonnelHandler struct {
	service *services.PersonnelService
}

func NewPersonnelHandler(service *services.PersonnelService) *PersonnelHandler {
	return &PersonnelHandler{service: service}
}

func (h *PersonnelHandler) AddPersonnel(c *fiber.Ctx) error {
	caller, ok := scope.GetIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.AddPersonnelRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	role := models.Role(req.Role)
	profile, err := decodeProfile(role, req.Profile)
	if err != nil {
		return badRequest(c, err.Error())
	}

	identity, err := h.service.AddPersonnel(caller, services.CreateIdentityInput{
		Email:   req.Email,
		Secret:  req.Password,
		Name:    req.Name,
		Role:    role,
		Profile: profile,
	})
	if err != nil {
		var verr *services.ValidationError
		var merr *models.MissingRoleFieldError
		switch {
		case errors.Is(err, services.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Only hospital administrators may provision staff",
			})
		case errors.Is(err, services.ErrDuplicateContact),
			errors.Is(err, services.ErrDuplicateLicense),
			errors.As(err, &verr),
			errors.As(err, &merr):
			return badRequest(c, err.Error())
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewIdentityResponse(identity))
}

func (h *PersonnelHandler) ListPersonnel(c *fiber.Ctx) error {
	caller, ok := scope.GetIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	identities, err := h.service.ListPersonnel(caller)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Only hospital administrators may list staff",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	out := make([]dto.IdentityResponse, 0, len(identities))
	for i := range identities {
		out = append(out, dto.NewIdentityResponse(&identities[i]))
	}
	return c.JSON(out)
}
