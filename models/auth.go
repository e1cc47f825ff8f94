package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims are the claims carried by tokens from the auth provider
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email,omitempty"`
	Role   UserRole `json:"role"`

	jwt.RegisteredClaims
}

// HasRole reports whether the claims carry one of roles.
func (c *JWTClaims) HasRole(roles ...UserRole) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}
