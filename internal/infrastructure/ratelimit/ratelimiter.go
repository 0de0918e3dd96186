// Package ratelimit throttles the public report endpoints per client key.
package ratelimit

import (
	"context"
	"time"
)

type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
	RequestsPerDay    int
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error)
	Reset(ctx context.Context, key string) error
}

type window struct {
	duration time.Duration
	limit    int
}

// windows lists the enabled windows, shortest first.
func (c RateLimitConfig) windows() []window {
	all := []window{
		{time.Minute, c.RequestsPerMinute},
		{time.Hour, c.RequestsPerHour},
		{24 * time.Hour, c.RequestsPerDay},
	}
	out := all[:0]
	for _, w := range all {
		if w.limit > 0 {
			out = append(out, w)
		}
	}
	return out
}
