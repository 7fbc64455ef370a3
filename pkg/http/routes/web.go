package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oakvale/wedding-backend/pkg/http/handlers"
	"github.com/oakvale/wedding-backend/pkg/http/middlewares"
)

// Setup registers the full API surface. The write-ish endpoints are
// registered with All so each handler owns its own preflight and method
// handling, mirroring the serverless functions they replaced.
func Setup(app *fiber.App) {
	app.Get("/api/health", handlers.HealthCheck)

	app.All("/api/auth", handlers.Auth)
	app.All("/api/rsvp", middlewares.RateLimit("rsvp"), handlers.SubmitRSVP)
	app.All("/api/places/autocomplete", middlewares.RateLimit("places"), handlers.PlacesAutocomplete)
	app.All("/api/address/validate", middlewares.RateLimit("address"), handlers.ValidateAddress)

	admin := app.Group("/api/admin", middlewares.Verify)
	admin.Get("/rsvps.csv", handlers.ExportRSVPs)
}
