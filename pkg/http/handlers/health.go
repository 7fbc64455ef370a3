package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports liveness for deployment probes.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
