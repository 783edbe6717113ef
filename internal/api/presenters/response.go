package presenters

import (
	"errors"

	"mymixes/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

type ErrorBody struct {
	Error   string         `json:"error"`
	Details []domain.Issue `json:"details,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, code int) error {
	if data == nil {
		return c.SendStatus(code)
	}
	return c.Status(code).JSON(data)
}

// ErrorResponse writes {"error": message}; validation errors also carry their issue list.
func ErrorResponse(c *fiber.Ctx, code int, message string, err error) error {
	body := ErrorBody{Error: message}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		body.Details = verr.Issues
	}

	if code >= fiber.StatusInternalServerError && err != nil {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(body)
}

// ErrorHandler is the single place where service and persistence errors become HTTP statuses.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, message := Classify(err)
	return ErrorResponse(c, code, message, err)
}

func Classify(err error) (int, string) {
	var verr *domain.ValidationError
	var ferr *fiber.Error

	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, domain.MessageValidationFailed
	case errors.Is(err, domain.ErrInvalidID):
		return fiber.StatusBadRequest, domain.MessageInvalidID
	case errors.Is(err, domain.ErrPasswordRequired):
		return fiber.StatusBadRequest, domain.MessagePasswordRequired
	case errors.Is(err, domain.ErrQrTokenRequired):
		return fiber.StatusBadRequest, domain.MessageQrTokenRequired
	case errors.Is(err, domain.ErrImageRequired):
		return fiber.StatusBadRequest, domain.MessageImageRequired
	case errors.Is(err, domain.ErrInvalidImageType), errors.Is(err, domain.ErrImageTooLarge):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrIngredientTypeNotFound), errors.Is(err, gorm.ErrForeignKeyViolated):
		return fiber.StatusBadRequest, domain.MessageInvalidRelation
	case errors.Is(err, domain.ErrTokenMissing):
		return fiber.StatusUnauthorized, domain.MessageTokenRequired
	case errors.Is(err, domain.ErrTokenExpired):
		return fiber.StatusUnauthorized, domain.MessageTokenExpired
	case errors.Is(err, domain.ErrTokenInvalid):
		return fiber.StatusUnauthorized, domain.MessageTokenInvalid
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, domain.MessageInvalidCredentials
	case errors.Is(err, domain.ErrAdminRequired):
		return fiber.StatusForbidden, domain.MessageAdminRequired
	case errors.Is(err, domain.ErrInvalidQrToken):
		return fiber.StatusForbidden, domain.MessageInvalidQrToken
	case errors.Is(err, domain.ErrRecipeNotFound):
		return fiber.StatusNotFound, domain.MessageRecipeNotFound
	case errors.Is(err, domain.ErrQrTokenNotFound):
		return fiber.StatusNotFound, domain.MessageQrTokenNotFound
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound, domain.MessageRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fiber.StatusConflict, domain.MessageUniqueConstraint
	case errors.Is(err, domain.ErrStorageDisabled):
		return fiber.StatusServiceUnavailable, domain.MessageStorageDisabled
	case errors.Is(err, domain.ErrServerConfig):
		return fiber.StatusInternalServerError, domain.MessageServerConfig
	case errors.As(err, &ferr):
		return ferr.Code, ferr.Message
	default:
		return fiber.StatusInternalServerError, domain.MessageFailedProcessRequest
	}
}
