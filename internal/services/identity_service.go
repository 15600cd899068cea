package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/config"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/models"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/scope"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`(?i)^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// IdentityService is the credential store and role-variant directory.
type IdentityService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewIdentityService(db *gorm.DB, cfg *config.Config) *IdentityService {
	return &IdentityService{db: db, cfg: cfg}
}

// CreateIdentityInput carries the base and role-variant fields for one new
// identity. The plaintext secret is hashed before storage and never kept.
type CreateIdentityInput struct {
	Email      string
	Secret     string
	Name       string
	Role       models.Role
	HospitalID *uuid.UUID
	Profile    models.RoleProfile
	Verified   bool
}

func (s *IdentityService) Create(input CreateIdentityInput) (*models.Identity, error) {
	email := NormalizeContact(input.Email)
	if email == "" || !emailPattern.MatchString(email) {
		return nil, validationErr("email", "a valid contact address is required")
	}
	if len(input.Secret) < s.cfg.MinSecretLength {
		return nil, validationErr("password", fmt.Sprintf("must be at least %d characters", s.cfg.MinSecretLength))
	}
	if input.Name == "" {
		return nil, validationErr("name", "is required")
	}
	if !models.ValidRole(input.Role) {
		return nil, validationErr("role", "unknown role")
	}
	if models.HospitalAffiliated(input.Role) && input.HospitalID == nil {
		return nil, validationErr("hospital_id", "is required for this role")
	}

	if err := s.checkCredentialUnique(input.Role, input.Profile); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	identity := models.Identity{
		ID:         uuid.New(),
		Email:      email,
		Password:   string(hash),
		Name:       input.Name,
		Role:       input.Role,
		HospitalID: input.HospitalID,
		Verified:   input.Verified,
	}
	if err := identity.SetProfile(input.Profile); err != nil {
		return nil, err
	}

	// Uniqueness rides on the email index so concurrent signups for the
	// same contact cannot race a check-then-insert.
	if err := s.db.Create(&identity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateContact
		}
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	return &identity, nil
}

// checkCredentialUnique enforces that license and certification numbers are
// unique within their role's namespace. The profile lives in jsonb, so this
// is a lookup on the stored field rather than a constraint.
func (s *IdentityService) checkCredentialUnique(role models.Role, profile models.RoleProfile) error {
	if profile == nil {
		return nil
	}
	field, number := profile.Credential()
	if field == "" || number == "" {
		return nil
	}

	var count int64
	err := s.db.Model(&models.Identity{}).
		Where("role = ? AND profile ->> ? = ?", role, field, number).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check credential uniqueness: %w", err)
	}
	if count > 0 {
		return ErrDuplicateLicense
	}
	return nil
}

func (s *IdentityService) FindByContact(email string) (*models.Identity, error) {
	var identity models.Identity
	err := s.db.Where("email = ?", NormalizeContact(email)).First(&identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &identity, nil
}

func (s *IdentityService) FindByID(id uuid.UUID) (*models.Identity, error) {
	var identity models.Identity
	err := s.db.First(&identity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &identity, nil
}

// ListByHospital returns identities affiliated with a hospital, optionally
// restricted to a role subset.
func (s *IdentityService) ListByHospital(hospitalID uuid.UUID, roles []models.Role) ([]models.Identity, error) {
	var identities []models.Identity
	query := s.db.Scopes(scope.ForHospital(hospitalID))
	if len(roles) > 0 {
		query = query.Where("role IN ?", roles)
	}
	if err := query.Order("created_at ASC").Find(&identities).Error; err != nil {
		return nil, err
	}
	return identities, nil
}

// NormalizeContact lowercases and trims a contact address.
func NormalizeContact(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
