package domain

import (
	"errors"
	"time"
)

const AdminTokenLifetime = 24 * time.Hour

var (
	MessagePasswordRequired   = "Password is required"
	MessageInvalidCredentials = "Invalid credentials"
	MessageServerConfig       = "Server configuration error"
	MessageTokenRequired      = "Access token required"
	MessageTokenInvalid       = "Invalid token"
	MessageTokenExpired       = "Token expired"
	MessageAdminRequired      = "Admin access required"

	ErrPasswordRequired   = errors.New("password is required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrServerConfig       = errors.New("server configuration error")
	ErrTokenMissing       = errors.New("access token required")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrAdminRequired      = errors.New("admin access required")
)

type (
	LoginRequest struct {
		Password string `json:"password"`
	}

	AuthUser struct {
		Role     string     `json:"role"`
		IssuedAt *time.Time `json:"iat,omitempty"`
		Expires  *time.Time `json:"exp,omitempty"`
	}

	LoginResponse struct {
		Token string   `json:"token"`
		User  AuthUser `json:"user"`
	}

	VerifyResponse struct {
		Valid bool     `json:"valid"`
		User  AuthUser `json:"user"`
	}
)
