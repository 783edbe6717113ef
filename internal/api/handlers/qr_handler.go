package handlers

import (
	"strconv"

	"mymixes/domain"
	"mymixes/internal/api/presenters"
	"mymixes/internal/utils"
	"mymixes/pkg/qr"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	QrHandler interface {
		GenerateToken(c *fiber.Ctx) error
		ListTokens(c *fiber.Ctx) error
		CountTokens(c *fiber.Ctx) error
		RenderImage(c *fiber.Ctx) error
		DeleteToken(c *fiber.Ctx) error
	}

	qrHandler struct {
		qrService qr.QrService
		validator *validator.Validate
	}
)

func NewQrHandler(qrService qr.QrService, validator *validator.Validate) QrHandler {
	return &qrHandler{
		qrService: qrService,
		validator: validator,
	}
}

func (h *qrHandler) GenerateToken(c *fiber.Ctx) error {
	req := new(domain.GenerateQrRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := utils.ValidateStruct(h.validator, req); err != nil {
		return presenters.ErrorHandler(c, err)
	}

	res, err := h.qrService.GenerateToken(c.Context(), req.RecipeID)
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

func (h *qrHandler) ListTokens(c *fiber.Ctx) error {
	var recipeID *uint
	if raw := c.Query("recipeId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 0)
		if err != nil || id == 0 {
			return presenters.ErrorHandler(c, domain.ErrInvalidID)
		}
		rid := uint(id)
		recipeID = &rid
	}

	res, err := h.qrService.ListActiveTokens(c.Context(), recipeID)
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *qrHandler) CountTokens(c *fiber.Ctx) error {
	res, err := h.qrService.CountsByRecipe(c.Context())
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *qrHandler) RenderImage(c *fiber.Ctx) error {
	png, err := h.qrService.RenderPNG(c.Context(), c.Params("id"), queryInt(c, "size"))
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Status(fiber.StatusOK).Send(png)
}

func (h *qrHandler) DeleteToken(c *fiber.Ctx) error {
	if err := h.qrService.DeleteToken(c.Context(), c.Params("id")); err != nil {
		return presenters.ErrorHandler(c, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusNoContent)
}
