package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oakvale/wedding-backend/pkg/http/responses"
	"github.com/oakvale/wedding-backend/pkg/token"
)

// Verify requires a valid session token, from either the Authorization
// header or the wedding_auth cookie, and stores the claims for handlers.
func Verify(c *fiber.Ctx) error {
	payload := token.VerifyRequest(responses.Header(c))
	if payload == nil {
		return responses.Fail(c, fiber.StatusUnauthorized, "Authentication required")
	}
	c.Locals("session", payload)
	return c.Next()
}
