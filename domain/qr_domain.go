package domain

import (
	"errors"
	"time"
)

const (
	QrTokenBytes         = 32
	QrTokenLifetimeYears = 1
	DefaultQrSize        = 256
)

var (
	MessageInvalidQrToken  = "Invalid or expired QR token"
	MessageQrTokenRequired = "QR token is required"
	MessageQrTokenNotFound = "QR token not found"

	ErrInvalidQrToken  = errors.New("invalid or expired QR token")
	ErrQrTokenRequired = errors.New("QR token is required")
	ErrQrTokenNotFound = errors.New("QR token not found")
)

type (
	GenerateQrRequest struct {
		RecipeID uint `json:"recipeId" validate:"required,gt=0"`
	}

	GenerateQrResponse struct {
		ID        string    `json:"id"`
		Token     string    `json:"token"`
		QrURL     string    `json:"qrUrl"`
		ExpiresAt time.Time `json:"expiresAt"`
		RecipeID  uint      `json:"recipeId"`
		Recipe    RecipeRef `json:"recipe"`
	}

	QrToken struct {
		ID        string     `json:"id"`
		Token     string     `json:"token"`
		RecipeID  uint       `json:"recipeId"`
		ExpiresAt time.Time  `json:"expiresAt"`
		Used      bool       `json:"used"`
		UsedAt    *time.Time `json:"usedAt,omitempty"`
		CreatedAt time.Time  `json:"createdAt"`
		Recipe    *RecipeRef `json:"recipe,omitempty"`
		QrURL     string     `json:"qrUrl"`
	}
)
