package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionToken stores the hash of an opaque refresh token bound to one
// identity. The raw token is only ever returned to the caller at issuance.
type SessionToken struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	IdentityID uuid.UUID `gorm:"type:uuid;not null;index" json:"identity_id"`
	TokenHash  string    `gorm:"uniqueIndex;not null;size:64" json:"-"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	Revoked    bool      `gorm:"default:false" json:"revoked"`
	CreatedAt  time.Time `json:"created_at"`
	Identity   Identity  `gorm:"foreignKey:IdentityID" json:"-"`
}
