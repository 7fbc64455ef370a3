package ratelimit

import (
	"context"
	"sync"
	"time"
)

const sweepInterval = 60 * time.Second

type record struct {
	count     int
	resetTime time.Time
}

// Memory is the in-process fixed-window store. Counters do not survive a
// restart and are not shared across instances.
type Memory struct {
	mu        sync.Mutex
	records   map[string]*record
	lastSweep time.Time
	now       func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		records: make(map[string]*record),
		now:     time.Now,
	}
}

// Consume never returns an error; the signature carries one only to satisfy
// Store alongside backends that can fail.
func (m *Memory) Consume(_ context.Context, key string, cfg Config) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)

	rec, ok := m.records[key]
	if !ok || now.After(rec.resetTime) {
		rec = &record{count: 1, resetTime: now.Add(cfg.Window)}
		m.records[key] = rec
		return Result{
			Allowed:   true,
			Limit:     cfg.Max,
			Remaining: cfg.Max - 1,
			ResetTime: rec.resetTime,
		}, nil
	}

	if rec.count >= cfg.Max {
		retry := ceilSeconds(rec.resetTime.Sub(now))
		return Result{
			Allowed:    false,
			Limit:      cfg.Max,
			Remaining:  0,
			ResetTime:  rec.resetTime,
			RetryAfter: retry,
		}, nil
	}

	rec.count++
	remaining := cfg.Max - rec.count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   true,
		Limit:     cfg.Max,
		Remaining: remaining,
		ResetTime: rec.resetTime,
	}, nil
}

// sweep drops expired records at most once per sweepInterval. Amortized
// O(1) per call; callers hold the lock.
func (m *Memory) sweep(now time.Time) {
	if now.Sub(m.lastSweep) < sweepInterval {
		return
	}
	m.lastSweep = now
	for key, rec := range m.records {
		if now.After(rec.resetTime) {
			delete(m.records, key)
		}
	}
}

func ceilSeconds(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Second
	}
	secs := d / time.Second
	if d%time.Second != 0 {
		secs++
	}
	if secs < 1 {
		secs = 1
	}
	return secs * time.Second
}
