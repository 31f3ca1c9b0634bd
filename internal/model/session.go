package model

import (
	"time"

	"github.com/google/uuid"
)

// Session is a resolved proof of authentication. It is read-only for consumers.
type Session struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}
