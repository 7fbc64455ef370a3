package handlers

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/oakvale/wedding-backend/pkg/http/middlewares"
	"github.com/oakvale/wedding-backend/pkg/http/responses"
	"github.com/oakvale/wedding-backend/pkg/objects"
	"github.com/oakvale/wedding-backend/pkg/ratelimit"
	"github.com/oakvale/wedding-backend/pkg/token"
)

// Auth trades the shared site password for a signed session token. It is
// registered for all methods and walks the whole request lifecycle itself,
// the way the original serverless function did: preflight, method check,
// rate limit, body validation, password check, token issue.
func Auth(c *fiber.Ctx) error {
	responses.CORS(c)
	if c.Method() == fiber.MethodOptions {
		return c.SendStatus(fiber.StatusNoContent)
	}
	if c.Method() != fiber.MethodPost {
		return responses.Fail(c, fiber.StatusMethodNotAllowed, "Method not allowed")
	}

	ip := ratelimit.ClientIP(responses.Header(c))
	result, err := objects.RateStore.Consume(c.Context(), ratelimit.Key("auth", ip), middlewares.BucketConfig("auth"))
	if err != nil {
		log.Printf("rate limit store error for bucket auth: %v", err)
	} else {
		responses.RateHeaders(c, result)
		if !result.Allowed {
			return responses.Fail(c, fiber.StatusTooManyRequests, "Too many attempts. Please try again later.")
		}
	}

	var body map[string]any
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid JSON body")
	}
	password, ok := body["password"].(string)
	if !ok || password == "" {
		return responses.Fail(c, fiber.StatusBadRequest, "Password is required")
	}

	hash, err := token.PasswordHash()
	if err != nil {
		log.Printf("auth configuration error: %v", err)
		return responses.Fail(c, fiber.StatusInternalServerError, "Server configuration error")
	}
	if !token.VerifyPassword(password, hash) {
		return responses.Fail(c, fiber.StatusUnauthorized, "Invalid password")
	}

	tok, err := token.Create(token.SubjectGuest)
	if err != nil {
		log.Printf("token issue error: %v", err)
		return responses.Fail(c, fiber.StatusInternalServerError, "Server configuration error")
	}

	c.Cookie(&fiber.Cookie{
		Name:     token.CookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   token.TTLSeconds,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(fiber.Map{
		"ok":        true,
		"token":     tok,
		"expiresIn": token.TTLSeconds,
	})
}
