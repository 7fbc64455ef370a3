package config

import (
	"github.com/oakvale/wedding-backend/pkg/objects"
)

// RegisterDefaults maps the environment surface onto namespaced config
// keys. Call after objects.Config has been assigned.
func RegisterDefaults() {
	cfg := objects.Config

	cfg.Add("app", map[string]any{
		"name": "wedding-backend",
		"env":  cfg.Env("APP_ENV", "development"),
		"port": cfg.Env("PORT", "3000"),
	})

	cfg.Add("site", map[string]any{
		"password_hash": cfg.Env("SITE_PASSWORD_HASH", ""),
		"jwt_secret":    cfg.Env("JWT_SECRET", ""),
	})

	cfg.Add("ratelimit", map[string]any{
		"auth_max":               cfg.Env("RATE_LIMIT_AUTH_MAX", 10),
		"auth_window_seconds":    cfg.Env("RATE_LIMIT_AUTH_WINDOW_SECONDS", 600),
		"rsvp_max":               cfg.Env("RATE_LIMIT_RSVP_MAX", 5),
		"rsvp_window_seconds":    cfg.Env("RATE_LIMIT_RSVP_WINDOW_SECONDS", 3600),
		"places_max":             cfg.Env("RATE_LIMIT_PLACES_MAX", 30),
		"places_window_seconds":  cfg.Env("RATE_LIMIT_PLACES_WINDOW_SECONDS", 60),
		"address_max":            cfg.Env("RATE_LIMIT_ADDRESS_MAX", 20),
		"address_window_seconds": cfg.Env("RATE_LIMIT_ADDRESS_WINDOW_SECONDS", 60),
	})

	cfg.Add("admin", map[string]any{
		"password_hash": cfg.Env("ADMIN_PASSWORD_HASH", ""),
	})

	cfg.Add("google", map[string]any{
		"maps_api_key":     cfg.Env("GOOGLE_MAPS_API_KEY", ""),
		"places_base_url":  cfg.Env("GOOGLE_PLACES_BASE_URL", "https://places.googleapis.com"),
		"address_base_url": cfg.Env("GOOGLE_ADDRESS_BASE_URL", "https://addressvalidation.googleapis.com"),
	})

	cfg.Add("email", map[string]any{
		"api_key":  cfg.Env("RESEND_API_KEY", ""),
		"from":     cfg.Env("EMAIL_FROM", "Ana & Miguel <rsvp@oakvale.example>"),
		"base_url": cfg.Env("RESEND_BASE_URL", "https://api.resend.com"),
	})

	cfg.Add("redis", map[string]any{
		"addr": cfg.Env("REDIS_ADDR", ""),
	})

	cfg.Add("db", map[string]any{
		"driver":   cfg.Env("DB_DRIVER", ""),
		"host":     cfg.Env("DB_HOST", "localhost"),
		"port":     cfg.Env("DB_PORT", 5432),
		"username": cfg.Env("DB_USER", ""),
		"password": cfg.Env("DB_PASSWORD", ""),
		"database": cfg.Env("DB_NAME", "wedding"),
	})
}
