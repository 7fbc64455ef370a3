// Package ratelimit bounds request rates per (bucket, client) pair with a
// fixed-window counter. The default store is process-local memory, which is
// only correct for a single instance: horizontally scaled deployments each
// count their own traffic, effectively multiplying the limit by the number
// of warm instances. Use the Redis store when that matters.
package ratelimit

import (
	"context"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Max    int
	Window time.Duration
}

type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetTime time.Time
	// RetryAfter is set only when the request was denied, never below 1s.
	RetryAfter time.Duration
}

// Store is the counter backend. Consume records one request against key and
// reports whether it fits inside the current window.
type Store interface {
	Consume(ctx context.Context, key string, cfg Config) (Result, error)
}

// Key builds the composite counter key for a bucket and client address.
func Key(bucket, ip string) string {
	return bucket + ":" + ip
}

// ClientIP resolves the caller address from request headers: the proxy
// connection header first, then the generic client header, then the first
// hop of X-Forwarded-For. Clients that present none of them all share the
// "unknown" bucket, which over-restricts rather than under-restricts.
func ClientIP(get func(string) string) string {
	if ip := strings.TrimSpace(get("X-Real-IP")); ip != "" {
		return ip
	}
	if ip := strings.TrimSpace(get("Client-IP")); ip != "" {
		return ip
	}
	if xff := get("X-Forwarded-For"); xff != "" {
		first := xff
		if comma := strings.IndexByte(xff, ','); comma >= 0 {
			first = xff[:comma]
		}
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return "unknown"
}

// Headers renders a Result as standard rate-limit response headers.
func Headers(r Result) map[string]string {
	h := map[string]string{
		"X-RateLimit-Limit":     strconv.Itoa(r.Limit),
		"X-RateLimit-Remaining": strconv.Itoa(r.Remaining),
		"X-RateLimit-Reset":     strconv.FormatInt(r.ResetTime.Unix(), 10),
	}
	if !r.Allowed && r.RetryAfter > 0 {
		h["Retry-After"] = strconv.Itoa(int(r.RetryAfter / time.Second))
	}
	return h
}
