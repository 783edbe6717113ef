package handlers

import (
	"strings"

	"mymixes/domain"
	"mymixes/internal/api/presenters"
	"mymixes/pkg/auth"

	"github.com/gofiber/fiber/v2"
)

type (
	AuthHandler interface {
		Login(c *fiber.Ctx) error
		Verify(c *fiber.Ctx) error
	}

	authHandler struct {
		authService auth.AuthService
	}
)

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &authHandler{authService: authService}
}

func (h *authHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.authService.Login(c.Context(), *req)
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *authHandler) Verify(c *fiber.Ctx) error {
	token, found := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return presenters.ErrorHandler(c, domain.ErrTokenMissing)
	}

	user, err := h.authService.Verify(c.Context(), strings.TrimSpace(token))
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	return presenters.SuccessResponse(c, domain.VerifyResponse{Valid: true, User: user}, fiber.StatusOK)
}
