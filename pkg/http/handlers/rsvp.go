package handlers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/oarkflow/xid/wuid"

	"github.com/oakvale/wedding-backend/pkg/http/requests"
	"github.com/oakvale/wedding-backend/pkg/http/responses"
	"github.com/oakvale/wedding-backend/pkg/models"
	"github.com/oakvale/wedding-backend/pkg/objects"
	"github.com/oakvale/wedding-backend/pkg/ratelimit"
)

// SubmitRSVP records a guest's answer and sends a confirmation email.
// Email delivery is best effort; the RSVP is saved either way.
func SubmitRSVP(c *fiber.Ctx) error {
	responses.CORS(c)
	if c.Method() == fiber.MethodOptions {
		return c.SendStatus(fiber.StatusNoContent)
	}
	if c.Method() != fiber.MethodPost {
		return responses.Fail(c, fiber.StatusMethodNotAllowed, "Method not allowed")
	}

	var req requests.RSVPRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid JSON body")
	}
	if err := req.Validate(); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	rsvp := models.RSVP{
		ID:        wuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Attending: req.Attending,
		Guests:    req.Guests,
		Dietary:   req.Dietary,
		Message:   req.Message,
		Locale:    req.Locale,
		ClientIP:  ratelimit.ClientIP(responses.Header(c)),
		CreatedAt: time.Now().UTC(),
	}
	if rsvp.Locale == "" {
		rsvp.Locale = "en"
	}

	if err := objects.Store.SaveRSVP(rsvp); err != nil {
		log.Printf("failed to save rsvp for %s: %v", rsvp.Email, err)
		return responses.Fail(c, fiber.StatusInternalServerError, "Could not save your RSVP. Please try again.")
	}

	if objects.Mail != nil && objects.Mail.Enabled() {
		if err := objects.Mail.SendConfirmation(rsvp); err != nil {
			log.Printf("failed to send confirmation to %s: %v", rsvp.Email, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok": true,
		"id": rsvp.ID,
	})
}
