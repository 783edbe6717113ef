package handlers

import (
	"mymixes/domain"
	"mymixes/internal/api/presenters"
	"mymixes/pkg/image"

	"github.com/gofiber/fiber/v2"
)

type (
	ImageHandler interface {
		UploadImage(c *fiber.Ctx) error
	}

	imageHandler struct {
		imageService image.ImageService
	}
)

func NewImageHandler(imageService image.ImageService) ImageHandler {
	return &imageHandler{imageService: imageService}
}

func (h *imageHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorHandler(c, domain.ErrImageRequired)
	}

	res, err := h.imageService.UploadImage(c.Context(), file)
	if err != nil {
		return presenters.ErrorHandler(c, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}
