package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemory(start time.Time) (*Memory, *time.Time) {
	now := start
	m := NewMemory()
	m.now = func() time.Time { return now }
	return m, &now
}

func TestMemoryWindowCountsDown(t *testing.T) {
	m, _ := newTestMemory(time.Unix(1_700_000_000, 0))
	cfg := Config{Max: 10, Window: 10 * time.Minute}

	for i := 1; i <= 10; i++ {
		res, err := m.Consume(context.Background(), "auth:1.2.3.4", cfg)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "call %d should be allowed", i)
		assert.Equal(t, 10-i, res.Remaining, "call %d remaining", i)
		assert.Equal(t, 10, res.Limit)
	}

	res, err := m.Consume(context.Background(), "auth:1.2.3.4", cfg)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.GreaterOrEqual(t, res.RetryAfter, time.Second)
}

func TestMemoryWindowResets(t *testing.T) {
	m, now := newTestMemory(time.Unix(1_700_000_000, 0))
	cfg := Config{Max: 3, Window: time.Minute}

	for i := 0; i < 4; i++ {
		m.Consume(context.Background(), "k", cfg)
	}
	res, _ := m.Consume(context.Background(), "k", cfg)
	require.False(t, res.Allowed)

	*now = now.Add(cfg.Window + time.Second)
	res, _ = m.Consume(context.Background(), "k", cfg)
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.Remaining)
	assert.Equal(t, now.Add(cfg.Window), res.ResetTime)
}

func TestMemoryKeysAreIndependent(t *testing.T) {
	m, _ := newTestMemory(time.Unix(1_700_000_000, 0))
	cfg := Config{Max: 1, Window: time.Minute}

	res, _ := m.Consume(context.Background(), "auth:1.1.1.1", cfg)
	require.True(t, res.Allowed)
	res, _ = m.Consume(context.Background(), "auth:1.1.1.1", cfg)
	require.False(t, res.Allowed)

	res, _ = m.Consume(context.Background(), "auth:2.2.2.2", cfg)
	assert.True(t, res.Allowed)
}

func TestMemoryRetryAfterRoundsUp(t *testing.T) {
	m, now := newTestMemory(time.Unix(1_700_000_000, 0))
	cfg := Config{Max: 1, Window: 90 * time.Second}

	m.Consume(context.Background(), "k", cfg)
	*now = now.Add(89*time.Second + 300*time.Millisecond)
	res, _ := m.Consume(context.Background(), "k", cfg)
	require.False(t, res.Allowed)
	assert.Equal(t, time.Second, res.RetryAfter)
}

func TestMemorySweepDropsExpiredRecords(t *testing.T) {
	m, now := newTestMemory(time.Unix(1_700_000_000, 0))
	cfg := Config{Max: 5, Window: 30 * time.Second}

	m.Consume(context.Background(), "a", cfg)
	m.Consume(context.Background(), "b", cfg)
	require.Len(t, m.records, 2)

	// Both windows lapse; the next consume is past the sweep interval.
	*now = now.Add(2 * time.Minute)
	m.Consume(context.Background(), "c", cfg)
	assert.Len(t, m.records, 1)
	_, ok := m.records["c"]
	assert.True(t, ok)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "auth:10.0.0.1", Key("auth", "10.0.0.1"))
	assert.Equal(t, "rsvp:unknown", Key("rsvp", "unknown"))
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"real ip wins", map[string]string{"X-Real-IP": "9.9.9.9", "X-Forwarded-For": "1.1.1.1"}, "9.9.9.9"},
		{"client ip second", map[string]string{"Client-IP": "8.8.8.8", "X-Forwarded-For": "1.1.1.1"}, "8.8.8.8"},
		{"forwarded first hop", map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, "1.2.3.4"},
		{"forwarded single", map[string]string{"X-Forwarded-For": " 4.4.4.4 "}, "4.4.4.4"},
		{"nothing", map[string]string{}, "unknown"},
		{"blank values", map[string]string{"X-Real-IP": "  ", "X-Forwarded-For": ","}, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClientIP(func(name string) string { return tt.headers[name] })
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeaders(t *testing.T) {
	reset := time.Unix(1_700_000_600, 0)

	h := Headers(Result{Allowed: true, Limit: 10, Remaining: 7, ResetTime: reset})
	assert.Equal(t, "10", h["X-RateLimit-Limit"])
	assert.Equal(t, "7", h["X-RateLimit-Remaining"])
	assert.Equal(t, "1700000600", h["X-RateLimit-Reset"])
	_, ok := h["Retry-After"]
	assert.False(t, ok)

	h = Headers(Result{Allowed: false, Limit: 10, Remaining: 0, ResetTime: reset, RetryAfter: 42 * time.Second})
	assert.Equal(t, "42", h["Retry-After"])
}
