package ratelimit

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryRateLimiter is the single-instance fallback used when Redis is
// disabled. Each key and window gets a token bucket refilled at limit per
// window with a burst of limit.
type MemoryRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	now      func() time.Time
}

func NewMemoryRateLimiter(now func() time.Time) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		now:      now,
	}
}

func (l *MemoryRateLimiter) Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windows := config.windows()
	buckets := make([]*rate.Limiter, 0, len(windows))
	for _, w := range windows {
		b := l.bucket(key, w)
		if b.TokensAt(now) < 1 {
			return false, nil
		}
		buckets = append(buckets, b)
	}
	// consume only once every window has room
	for _, b := range buckets {
		b.AllowN(now, 1)
	}
	return true, nil
}

func (l *MemoryRateLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	prefix := key + "|"
	for k := range l.limiters {
		if strings.HasPrefix(k, prefix) {
			delete(l.limiters, k)
		}
	}
	return nil
}

func (l *MemoryRateLimiter) bucket(key string, w window) *rate.Limiter {
	k := key + "|" + w.duration.String()
	b, ok := l.limiters[k]
	if !ok {
		every := w.duration / time.Duration(w.limit)
		b = rate.NewLimiter(rate.Every(every), w.limit)
		l.limiters[k] = b
	}
	return b
}
