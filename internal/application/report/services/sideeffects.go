package services

import (
	"context"
	"time"

	"github.com/civictrack/civictrack/internal/shared/goroutine"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

// SideEffectRunner executes work that must never fail or block the caller's
// primary operation.
type SideEffectRunner interface {
	Go(name string, fn func(ctx context.Context))
}

// AsyncRunner runs each side effect on its own goroutine with a context
// detached from the request and bounded by timeout.
type AsyncRunner struct {
	timeout time.Duration
	metrics Metrics
	logger  logger.Interface
}

func NewAsyncRunner(timeout time.Duration, metrics Metrics, log logger.Interface) *AsyncRunner {
	return &AsyncRunner{timeout: timeout, metrics: metrics, logger: log}
}

func (r *AsyncRunner) Go(name string, fn func(ctx context.Context)) {
	goroutine.SafeGo(r.logger, name, func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		ok := goroutine.Run(r.logger, name, func() { fn(ctx) })
		r.metrics.SideEffect(name, ok)
	})
}

// SyncRunner runs side effects inline with panic recovery. Used by tests
// where completion must be observable.
type SyncRunner struct {
	logger logger.Interface
}

func NewSyncRunner(log logger.Interface) *SyncRunner {
	return &SyncRunner{logger: log}
}

func (r *SyncRunner) Go(name string, fn func(ctx context.Context)) {
	goroutine.Run(r.logger, name, func() { fn(context.Background()) })
}
