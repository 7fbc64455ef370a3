package responses

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oakvale/wedding-backend/pkg/ratelimit"
)

// Fail writes the standard error envelope.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"ok":    false,
		"error": message,
	})
}

// CORS sets the allow headers every non-preflight response carries. The
// site is public; the password gate is the access control, not the origin.
func CORS(c *fiber.Ctx) {
	c.Set("Access-Control-Allow-Origin", "*")
	c.Set("Access-Control-Allow-Headers", "Content-Type")
}

// RateHeaders copies a rate-limit result onto the response.
func RateHeaders(c *fiber.Ctx, result ratelimit.Result) {
	for name, value := range ratelimit.Headers(result) {
		c.Set(name, value)
	}
}

// Header adapts a Fiber context to the plain header lookup consumed by
// the ratelimit and token helpers; Ctx.Get itself is variadic and does
// not fit their func(string) string parameter.
func Header(c *fiber.Ctx) func(string) string {
	return func(name string) string { return c.Get(name) }
}
