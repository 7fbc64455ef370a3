package handlers

import (
	"bytes"
	"encoding/csv"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/oakvale/wedding-backend/pkg/http/responses"
	"github.com/oakvale/wedding-backend/pkg/objects"
)

// ExportRSVPs streams every answer as CSV. Two gates: the Verify
// middleware has already required a valid session token, and the caller
// must also present the admin password, so a guest token alone cannot read
// the guest list.
func ExportRSVPs(c *fiber.Ctx) error {
	adminHash := objects.Config.GetString("admin.password_hash")
	if adminHash == "" {
		log.Printf("admin export: ADMIN_PASSWORD_HASH is not configured")
		return responses.Fail(c, fiber.StatusInternalServerError, "Server configuration error")
	}

	password := c.Get("X-Admin-Password")
	if password == "" || bcrypt.CompareHashAndPassword([]byte(adminHash), []byte(password)) != nil {
		return responses.Fail(c, fiber.StatusUnauthorized, "Invalid admin credentials")
	}

	rsvps, err := objects.Store.ListRSVPs()
	if err != nil {
		log.Printf("admin export: list failed: %v", err)
		return responses.Fail(c, fiber.StatusInternalServerError, "Could not export RSVPs")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "name", "email", "attending", "guests", "dietary", "message", "locale", "created_at"})
	for _, rsvp := range rsvps {
		_ = w.Write([]string{
			rsvp.ID,
			rsvp.Name,
			rsvp.Email,
			strconv.FormatBool(rsvp.Attending),
			strings.Join(rsvp.Guests, "; "),
			rsvp.Dietary,
			rsvp.Message,
			rsvp.Locale,
			rsvp.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("admin export: csv write failed: %v", err)
		return responses.Fail(c, fiber.StatusInternalServerError, "Could not export RSVPs")
	}

	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", `attachment; filename="rsvps.csv"`)
	return c.Send(buf.Bytes())
}
