package middlewares

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/oakvale/wedding-backend/pkg/http/responses"
	"github.com/oakvale/wedding-backend/pkg/objects"
	"github.com/oakvale/wedding-backend/pkg/ratelimit"
)

// RateLimit guards a route with the named bucket. Limits are read from
// config on every request so a .env reload takes effect without a restart.
func RateLimit(bucket string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		ip := ratelimit.ClientIP(responses.Header(c))
		cfg := BucketConfig(bucket)
		result, err := objects.RateStore.Consume(c.Context(), ratelimit.Key(bucket, ip), cfg)
		if err != nil {
			// Fail open: a blinking counter store should not lock guests
			// out of their own wedding site.
			log.Printf("rate limit store error for bucket %s: %v", bucket, err)
			return c.Next()
		}

		responses.RateHeaders(c, result)
		if !result.Allowed {
			return responses.Fail(c, fiber.StatusTooManyRequests, "Too many requests. Please try again later.")
		}
		return c.Next()
	}
}

// BucketConfig resolves a bucket's max and window from configuration.
func BucketConfig(bucket string) ratelimit.Config {
	var defMax, defWindow int
	switch bucket {
	case "auth":
		defMax, defWindow = 10, 600
	case "rsvp":
		defMax, defWindow = 5, 3600
	case "places":
		defMax, defWindow = 30, 60
	case "address":
		defMax, defWindow = 20, 60
	default:
		defMax, defWindow = 30, 60
	}
	maxRequests := objects.Config.GetInt("ratelimit."+bucket+"_max", defMax)
	windowSeconds := objects.Config.GetInt("ratelimit."+bucket+"_window_seconds", defWindow)
	return ratelimit.Config{
		Max:    maxRequests,
		Window: secondsToDuration(windowSeconds),
	}
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
