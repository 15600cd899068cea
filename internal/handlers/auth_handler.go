package handlers

import (
	"errors"

	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/dto"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/models"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService     *services.AuthService
	identityService *services.IdentityService
}

func NewAuthHandler(authService *services.AuthService, identityService *services.IdentityService) *AuthHandler {
	return &AuthHandler{authService: authService, identityService: identityService}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	role := models.Role(req.Role)
	if !models.ValidRole(role) {
		return badRequest(c, "Unknown role")
	}
	// hospital_admin identities are materialized at bootstrap login and
	// administrator accounts are provisioned out of band; neither may
	// self-register.
	if role == models.RoleAdministrator || role == models.RoleHospitalAdmin {
		return badRequest(c, "This role cannot self-register")
	}

	profile, err := decodeProfile(role, req.Profile)
	if err != nil {
		return badRequest(c, err.Error())
	}

	identity, err := h.identityService.Create(services.CreateIdentityInput{
		Email:      req.Email,
		Secret:     req.Password,
		Name:       req.Name,
		Role:       role,
		HospitalID: req.HospitalID,
		Profile:    profile,
	})
	if err != nil {
		var verr *services.ValidationError
		var merr *models.MissingRoleFieldError
		switch {
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

	// Verification email is best-effort; the identity exists either way.
	_ = h.authService.IssueEmailVerification(identity)

	return c.Status(fiber.StatusCreated).JSON(dto.NewIdentityResponse(identity))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var expectedRole *models.Role
	if req.Role != "" {
		role := models.Role(req.Role)
		if !models.ValidRole(role) {
			return badRequest(c, "Unknown role")
		}
		expectedRole = &role
	}

	session, err := h.authService.Authenticate(req.Email, req.Password, expectedRole)
	if err != nil {
		return authFailure(c, err)
	}

	return c.JSON(dto.AuthResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		Identity:     dto.NewIdentityResponse(session.Identity),
	})
}

func (h *AuthHandler) HospitalAdminLogin(c *fiber.Ctx) error {
	var req dto.HospitalAdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	session, err := h.authService.HospitalAdminBootstrap(req.Email, req.Password)
	if err != nil {
		return authFailure(c, err)
	}

	return c.JSON(dto.AuthResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		Identity:     dto.NewIdentityResponse(session.Identity),
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	session, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.AuthResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		Identity:     dto.NewIdentityResponse(session.Identity),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.authService.Logout(req.RefreshToken); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to logout",
		})
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// ForgotPassword always reports success so the endpoint cannot be used to
// probe which contacts exist.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.authService.RequestPasswordReset(req.Email); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(fiber.Map{"message": "If that contact exists, a reset link has been sent"})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.authService.ResetPassword(req.Token, req.Password); err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) || errors.Is(err, services.ErrInvalidToken) {
			return badRequest(c, err.Error())
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var req dto.VerifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	identity, err := h.authService.VerifyEmail(req.Token)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return badRequest(c, err.Error())
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.NewIdentityResponse(identity))
}
