package domain

import (
	"errors"
	"fmt"
	"strings"
)

const (
	RoleAdmin = "admin"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "Server error"
	MessageValidationFailed     = "Validation failed"
	MessageUniqueConstraint     = "Unique constraint failed"
	MessageInvalidRelation      = "Invalid relation reference"
	MessageRecordNotFound       = "Record not found"
	MessageInvalidID            = "Invalid id"

	ErrInvalidID = errors.New("invalid id")
)

type (
	// Issue is one failed rule from boundary validation.
	Issue struct {
		Field   string `json:"field"`
		Tag     string `json:"tag"`
		Message string `json:"message"`
	}

	ValidationError struct {
		Issues []Issue
	}
)

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
