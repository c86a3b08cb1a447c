package domain

import (
	"time"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// AuthClaims represents validated JWT claims
type AuthClaims struct {
	UserID    string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// AuthService defines authentication helpers for JWT issue and validation
type AuthService interface {
	GenerateAccessToken(user *User) (string, error)
	ValidateToken(token string) (*AuthClaims, error)
}

// AuthUsecase defines business logic for registration and login. Login
// accepts either the email or the username as identifier and returns the
// user plus a signed access token.
type AuthUsecase interface {
	Register(email, username, password string) (*User, string, error)
	Login(identifier, password string) (*User, string, error)
}
