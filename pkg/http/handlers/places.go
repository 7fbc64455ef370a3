package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/oakvale/wedding-backend/pkg/http/requests"
	"github.com/oakvale/wedding-backend/pkg/http/responses"
	"github.com/oakvale/wedding-backend/pkg/objects"
)

// upstreamClient is shared by both Google proxies.
var upstreamClient = &http.Client{Timeout: 10 * time.Second}

const maxUpstreamBody = 1 << 20

// PlacesAutocomplete proxies address predictions from the Google Places
// API. The proxy exists so the API key never reaches the browser and so
// the paid upstream sits behind our rate limiter.
func PlacesAutocomplete(c *fiber.Ctx) error {
	responses.CORS(c)
	if c.Method() == fiber.MethodOptions {
		return c.SendStatus(fiber.StatusNoContent)
	}
	if c.Method() != fiber.MethodPost {
		return responses.Fail(c, fiber.StatusMethodNotAllowed, "Method not allowed")
	}

	var req requests.AutocompleteRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid JSON body")
	}
	if err := req.Validate(); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	apiKey := objects.Config.GetString("google.maps_api_key")
	if apiKey == "" {
		log.Printf("places proxy: GOOGLE_MAPS_API_KEY is not configured")
		return responses.Fail(c, fiber.StatusInternalServerError, "Server configuration error")
	}

	payload := map[string]any{"input": req.Input}
	if req.SessionToken != "" {
		payload["sessionToken"] = req.SessionToken
	}
	base := objects.Config.GetString("google.places_base_url")
	return forward(c, base+"/v1/places:autocomplete", payload, map[string]string{
		"X-Goog-Api-Key": apiKey,
	})
}

// ValidateAddress proxies the Google Address Validation API.
func ValidateAddress(c *fiber.Ctx) error {
	responses.CORS(c)
	if c.Method() == fiber.MethodOptions {
		return c.SendStatus(fiber.StatusNoContent)
	}
	if c.Method() != fiber.MethodPost {
		return responses.Fail(c, fiber.StatusMethodNotAllowed, "Method not allowed")
	}

	var req requests.ValidateAddressRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid JSON body")
	}
	if err := req.Validate(); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	apiKey := objects.Config.GetString("google.maps_api_key")
	if apiKey == "" {
		log.Printf("address proxy: GOOGLE_MAPS_API_KEY is not configured")
		return responses.Fail(c, fiber.StatusInternalServerError, "Server configuration error")
	}

	payload := map[string]any{
		"address": map[string]any{"addressLines": []string{req.Address}},
	}
	base := objects.Config.GetString("google.address_base_url")
	return forward(c, base+"/v1:validateAddress?key="+apiKey, payload, nil)
}

// forward posts payload upstream and relays the response body and status
// verbatim.
func forward(c *fiber.Ctx, url string, payload any, headers map[string]string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return responses.Fail(c, fiber.StatusInternalServerError, "Server configuration error")
	}
	upReq, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return responses.Fail(c, fiber.StatusInternalServerError, "Server configuration error")
	}
	upReq.Header.Set("Content-Type", "application/json")
	for name, value := range headers {
		upReq.Header.Set(name, value)
	}

	resp, err := upstreamClient.Do(upReq)
	if err != nil {
		log.Printf("upstream request failed: %v", err)
		return responses.Fail(c, fiber.StatusBadGateway, "Upstream service error")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		log.Printf("upstream read failed: %v", err)
		return responses.Fail(c, fiber.StatusBadGateway, "Upstream service error")
	}

	c.Set("Content-Type", "application/json")
	return c.Status(resp.StatusCode).Send(raw)
}
