// File: internal/shared/core.go
package shared

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the JWT claims structure.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for JWT operations. It lives here so the
// auth middleware and domain packages can depend on it without importing each other.
type TokenService interface {
	GenerateToken(userID uuid.UUID) (string, time.Time, error)
	ValidateToken(tokenString string) (*Claims, error)
}
