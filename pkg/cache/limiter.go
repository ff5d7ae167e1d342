// Package cache provides a fixed-window rate limiter backed by Redis.
package cache

import (
	"context"
	"time"
)

// Limiter decides whether one more hit for key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// Result describes one limiter decision.
type Result struct {
	Allowed bool
	Count   int64         // hits in the current window, this one included
	Limit   int64
	ResetIn time.Duration // time until the window expires
}

// counter increments key and returns the new value and its remaining TTL,
// starting a window of length window on the first hit.
type counter interface {
	incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// WindowLimiter allows at most limit hits per key per window.
type WindowLimiter struct {
	store  counter
	limit  int64
	window time.Duration
	prefix string
}

func newWindowLimiter(store counter, prefix string, limit int, window time.Duration) *WindowLimiter {
	return &WindowLimiter{store: store, limit: int64(limit), window: window, prefix: prefix}
}

func (l *WindowLimiter) Allow(ctx context.Context, key string) (Result, error) {
	n, ttl, err := l.store.incr(ctx, l.prefix+key, l.window)
	if err != nil {
		return Result{}, err
	}
	if ttl < 0 {
		ttl = l.window
	}
	return Result{Allowed: n <= l.limit, Count: n, Limit: l.limit, ResetIn: ttl}, nil
}

// Unlimited admits everything; used when no Redis is configured.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) (Result, error) {
	return Result{Allowed: true}, nil
}
