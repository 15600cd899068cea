package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Identity is one authenticable principal. The contact email is unique
// across every role and the role tag never changes after creation.
type Identity struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email    string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Role     Role      `gorm:"size:30;not null;index" json:"role"`
	Verified bool      `gorm:"default:false" json:"verified"`

	HospitalID *uuid.UUID     `gorm:"type:uuid;index" json:"hospital_id,omitempty"`
	Profile    datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"profile"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	ResetToken          *string    `gorm:"size:64" json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	VerifyToken          *string    `gorm:"size:64" json:"-"`
	VerifyTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Identity) TableName() string { return "identities" }

// SetProfile attaches variant attributes, refusing a shape whose role does
// not match the identity's role tag.
func (i *Identity) SetProfile(p RoleProfile) error {
	if p == nil {
		i.Profile = datatypes.JSON([]byte("{}"))
		return nil
	}
	if p.ProfileRole() != i.Role {
		return fmt.Errorf("profile role %s does not match identity role %s", p.ProfileRole(), i.Role)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode %s profile: %w", i.Role, err)
	}
	i.Profile = datatypes.JSON(raw)
	return nil
}

// RoleProfile decodes the stored variant attributes for this identity's role.
func (i *Identity) RoleProfile() (RoleProfile, error) {
	return DecodeProfile(i.Role, []byte(i.Profile))
}

// ConsumeResetToken nulls the single-use reset token pair.
func (i *Identity) ConsumeResetToken() {
	i.ResetToken = nil
	i.ResetTokenExpiresAt = nil
}

// ConsumeVerifyToken marks the identity verified and nulls the token pair.
func (i *Identity) ConsumeVerifyToken() {
	i.Verified = true
	i.VerifyToken = nil
	i.VerifyTokenExpiresAt = nil
}
