package handlers

import (
	"mymixes/domain"
	"mymixes/internal/api/presenters"
	"mymixes/internal/middleware"
	"mymixes/internal/utils"
	"mymixes/pkg/review"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReviewHandler interface {
		ListReviews(c *fiber.Ctx) error
		CreateReview(c *fiber.Ctx) error
		CreateAnonymousReview(c *fiber.Ctx) error
	}

	reviewHandler struct {
		reviewService review.ReviewService
		validator     *validator.Validate
	}
)

func NewReviewHandler(reviewService review.ReviewService, validator *validator.Validate) ReviewHandler {
	return &reviewHandler{
		reviewService: reviewService,
		validator:     validator,
	}
}

func (h *reviewHandler) ListReviews(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	res, err := h.reviewService.ListReviews(c.Context(), recipeID)
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *reviewHandler) CreateReview(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	req := new(domain.ReviewRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := utils.ValidateStruct(h.validator, req); err != nil {
		return presenters.ErrorHandler(c, err)
	}

	res, err := h.reviewService.CreateReview(c.Context(), recipeID, nil, *req)
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

// CreateAnonymousReview stores the review against the recipe bound to the QR
// token. The id in the path is not trusted.
func (h *reviewHandler) CreateAnonymousReview(c *fiber.Ctx) error {
	recipeID, ok := c.Locals(middleware.LocalQrRecipeID).(uint)
	if !ok {
		return presenters.ErrorHandler(c, domain.ErrInvalidQrToken)
	}
	token, _ := c.Locals(middleware.LocalQrToken).(string)

	req := new(domain.AnonymousReviewRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := utils.ValidateStruct(h.validator, req); err != nil {
		return presenters.ErrorHandler(c, err)
	}

	res, err := h.reviewService.CreateAnonymousReview(c.Context(), recipeID, token, *req)
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}
