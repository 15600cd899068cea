package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/config"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/models"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/notify"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthSession is the result of a successful authentication: the identity,
// a short-lived access token and an opaque refresh token.
type AuthSession struct {
	Identity     *models.Identity
	AccessToken  string
	RefreshToken string
}

type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	notifier notify.Notifier
}

func NewAuthService(db *gorm.DB, cfg *config.Config, notifier notify.Notifier) *AuthService {
	return &AuthService{db: db, cfg: cfg, notifier: notifier}
}

// Authenticate verifies a staff credential pair. When expectedRole is set
// and differs from the stored role the call fails before any secret
// comparison, so a valid password for one role cannot probe another.
func (s *AuthService) Authenticate(email, secret string, expectedRole *models.Role) (*AuthSession, error) {
	var identity models.Identity
	if err := s.db.Where("email = ?", NormalizeContact(email)).First(&identity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if expectedRole != nil && *expectedRole != identity.Role {
		return nil, ErrRoleMismatch
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.Password), []byte(secret)); err != nil {
		return nil, ErrBadCredential
	}

	s.touchLastLogin(&identity)
	return s.issueSession(&identity)
}

// HospitalAdminBootstrap authenticates against a hospital's embedded
// administrative contact. The lookup requires an Approved hospital; "no
// such contact" and "not yet approved" are deliberately the same failure.
// On first success a hospital_admin identity is materialized from the
// contact; subsequent logins reuse it.
func (s *AuthService) HospitalAdminBootstrap(email, secret string) (*AuthSession, error) {
	contact := NormalizeContact(email)

	var hospital models.Hospital
	err := s.db.Where("admin_email = ? AND status = ?", contact, models.StatusApproved).First(&hospital).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hospital.AdminContact.Password), []byte(secret)); err != nil {
		return nil, ErrBadCredential
	}

	identity, err := s.materializeHospitalAdmin(&hospital, contact)
	if err != nil {
		return nil, err
	}

	s.touchLastLogin(identity)
	return s.issueSession(identity)
}

// materializeHospitalAdmin is an idempotent find-or-create keyed on the
// globally unique contact address; a duplicate-key race falls back to the
// lookup instead of failing.
func (s *AuthService) materializeHospitalAdmin(hospital *models.Hospital, contact string) (*models.Identity, error) {
	var identity models.Identity
	err := s.db.Where("email = ?", contact).First(&identity).Error
	if err == nil {
		return &identity, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hospitalID := hospital.ID
	identity = models.Identity{
		ID:         uuid.New(),
		Email:      contact,
		Password:   hospital.AdminContact.Password,
		Name:       hospital.AdminContact.Name,
		Role:       models.RoleHospitalAdmin,
		HospitalID: &hospitalID,
		Verified:   true,
	}
	if err := identity.SetProfile(models.HospitalAdminProfile{Title: hospital.AdminContact.Title}); err != nil {
		return nil, err
	}

	if err := s.db.Create(&identity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.Identity
			if ferr := s.db.Where("email = ?", contact).First(&existing).Error; ferr == nil {
				return &existing, nil
			}
		}
		return nil, fmt.Errorf("failed to materialize hospital admin: %w", err)
	}

	slog.Info("hospital admin identity materialized", "hospital_id", hospital.ID.String())
	return &identity, nil
}

func (s *AuthService) Refresh(rawToken string) (*AuthSession, error) {
	tokenHash := hashToken(rawToken)

	var stored models.SessionToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var identity models.Identity
	if err := s.db.First(&identity, "id = ?", stored.IdentityID).Error; err != nil {
		return nil, fmt.Errorf("identity not found: %w", err)
	}

	return s.issueSession(&identity)
}

func (s *AuthService) Logout(rawToken string) error {
	tokenHash := hashToken(rawToken)
	return s.db.Model(&models.SessionToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// IssueEmailVerification creates a single-use verification token and sends
// it best-effort. Hospital-provisioned staff never reach this path.
func (s *AuthService) IssueEmailVerification(identity *models.Identity) error {
	token, err := randomToken()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(s.cfg.VerifyTokenTTL)

	err = s.db.Model(identity).Updates(map[string]interface{}{
		"verify_token":            token,
		"verify_token_expires_at": expiry,
	}).Error
	if err != nil {
		return err
	}

	if nerr := s.notifier.SendEmailVerification(identity.Email, token); nerr != nil {
		slog.Error("verification email failed", "error", nerr, "identity_id", identity.ID.String())
	}
	return nil
}

// VerifyEmail consumes a verification token, flipping the verified flag and
// nulling the token pair.
func (s *AuthService) VerifyEmail(token string) (*models.Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	var identity models.Identity
	if err := s.db.Where("verify_token = ?", token).First(&identity).Error; err != nil {
		return nil, ErrInvalidToken
	}
	if identity.VerifyTokenExpiresAt == nil || time.Now().After(*identity.VerifyTokenExpiresAt) {
		return nil, ErrInvalidToken
	}

	identity.ConsumeVerifyToken()
	err := s.db.Model(&identity).Updates(map[string]interface{}{
		"verified":                true,
		"verify_token":            nil,
		"verify_token_expires_at": nil,
	}).Error
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// RequestPasswordReset issues a single-use reset token for the contact.
// Unknown contacts report success to the caller; only the log knows.
func (s *AuthService) RequestPasswordReset(email string) error {
	var identity models.Identity
	if err := s.db.Where("email = ?", NormalizeContact(email)).First(&identity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Info("password reset requested for unknown contact")
			return nil
		}
		return err
	}

	token, err := randomToken()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(s.cfg.ResetTokenTTL)

	err = s.db.Model(&identity).Updates(map[string]interface{}{
		"reset_token":            token,
		"reset_token_expires_at": expiry,
	}).Error
	if err != nil {
		return err
	}

	if nerr := s.notifier.SendPasswordReset(identity.Email, token); nerr != nil {
		slog.Error("password reset email failed", "error", nerr, "identity_id", identity.ID.String())
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new secret's hash.
func (s *AuthService) ResetPassword(token, newSecret string) error {
	if token == "" {
		return ErrInvalidToken
	}
	if len(newSecret) < s.cfg.MinSecretLength {
		return validationErr("password", fmt.Sprintf("must be at least %d characters", s.cfg.MinSecretLength))
	}

	var identity models.Identity
	if err := s.db.Where("reset_token = ?", token).First(&identity).Error; err != nil {
		return ErrInvalidToken
	}
	if identity.ResetTokenExpiresAt == nil || time.Now().After(*identity.ResetTokenExpiresAt) {
		return ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newSecret), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Model(&identity).Updates(map[string]interface{}{
		"password":               string(hash),
		"reset_token":            nil,
		"reset_token_expires_at": nil,
	}).Error
}

// touchLastLogin is best-effort; a lost update under race is acceptable.
func (s *AuthService) touchLastLogin(identity *models.Identity) {
	now := time.Now()
	identity.LastLoginAt = &now
	if err := s.db.Model(identity).Update("last_login_at", now).Error; err != nil {
		slog.Error("failed to update last login", "error", err, "identity_id", identity.ID.String())
	}
}

func (s *AuthService) issueSession(identity *models.Identity) (*AuthSession, error) {
	accessToken, err := s.generateAccessToken(identity)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(identity)
	if err != nil {
		return nil, err
	}

	return &AuthSession{
		Identity:     identity,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) generateAccessToken(identity *models.Identity) (string, error) {
	claims := jwt.MapClaims{
		"sub":   identity.ID.String(),
		"email": identity.Email,
		"role":  string(identity.Role),
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}
	if identity.HospitalID != nil {
		claims["hospital_id"] = identity.HospitalID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(identity *models.Identity) (string, error) {
	rawToken, err := randomToken()
	if err != nil {
		return "", err
	}

	record := models.SessionToken{
		ID:         uuid.New(),
		IdentityID: identity.ID,
		TokenHash:  hashToken(rawToken),
		ExpiresAt:  time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store session token: %w", err)
	}

	return rawToken, nil
}

func randomToken() (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(rawBytes), nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
