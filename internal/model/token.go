package model

import (
	"time"

	"github.com/google/uuid"
)

const TokenTypeBearer = "bearer"

// AuthToken only moves forward: once revoked or expired it is never
// reused or revived.
type AuthToken struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	Expired   bool      `json:"expired"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *AuthToken) Valid() bool {
	return !t.Expired && !t.Revoked
}
