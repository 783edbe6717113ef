package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type (
	HealthHandler interface {
		Root(c *fiber.Ctx) error
		Health(c *fiber.Ctx) error
	}

	healthHandler struct {
		environment string
		startedAt   time.Time
	}
)

func NewHealthHandler(environment string) HealthHandler {
	return &healthHandler{
		environment: environment,
		startedAt:   time.Now(),
	}
}

func (h *healthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Server is running!"})
}

func (h *healthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ok":          true,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"uptime":      time.Since(h.startedAt).Seconds(),
		"environment": h.environment,
	})
}
