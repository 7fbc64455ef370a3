package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// Redis is the shared-counter store for multi-instance deployments. It
// keeps the same fixed-window semantics as Memory: INCR per request, with
// the window TTL set when the counter is created.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Consume(ctx context.Context, key string, cfg Config) (Result, error) {
	k := redisKeyPrefix + key

	count, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return Result{}, err
	}
	if count == 1 {
		if err := r.client.PExpire(ctx, k, cfg.Window).Err(); err != nil {
			return Result{}, err
		}
	}

	ttl, err := r.client.PTTL(ctx, k).Result()
	if err != nil {
		return Result{}, err
	}
	if ttl < 0 {
		// Counter lost its expiry (flush, manual edit). Restore it so the
		// key cannot deny clients forever.
		ttl = cfg.Window
		if err := r.client.PExpire(ctx, k, cfg.Window).Err(); err != nil {
			return Result{}, err
		}
	}
	resetTime := time.Now().Add(ttl)

	if count > int64(cfg.Max) {
		return Result{
			Allowed:    false,
			Limit:      cfg.Max,
			Remaining:  0,
			ResetTime:  resetTime,
			RetryAfter: ceilSeconds(ttl),
		}, nil
	}

	remaining := cfg.Max - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   true,
		Limit:     cfg.Max,
		Remaining: remaining,
		ResetTime: resetTime,
	}, nil
}
