package dto

import (
	"time"

	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SignupRequest struct {
	Email      string         `json:"email"`
	Password   string         `json:"password"`
	Name       string         `json:"name"`
	Role       string         `json:"role"`
	HospitalID *uuid.UUID     `json:"hospital_id,omitempty"`
	Profile    map[string]any `json:"profile,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type HospitalAdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type VerifyEmailRequest struct {
	Token string `json:"token"`
}

type AddPersonnelRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Name     string         `json:"name"`
	Role     string         `json:"role"`
	// A hospital_id in the body is ignored; affiliation always comes from
	// the authenticated caller.
	HospitalID *uuid.UUID     `json:"hospital_id,omitempty"`
	Profile    map[string]any `json:"profile,omitempty"`
}

type IdentityResponse struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	Name        string         `json:"name"`
	Role        string         `json:"role"`
	Verified    bool           `json:"verified"`
	HospitalID  *uuid.UUID     `json:"hospital_id,omitempty"`
	Profile     datatypes.JSON `json:"profile,omitempty"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func NewIdentityResponse(i *models.Identity) IdentityResponse {
	return IdentityResponse{
		ID:          i.ID,
		Email:       i.Email,
		Name:        i.Name,
		Role:        string(i.Role),
		Verified:    i.Verified,
		HospitalID:  i.HospitalID,
		Profile:     i.Profile,
		LastLoginAt: i.LastLoginAt,
		CreatedAt:   i.CreatedAt,
	}
}

type AuthResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	Identity     IdentityResponse `json:"identity"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
