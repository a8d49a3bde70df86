// Package concurrency bounds how many operations run at once.
package concurrency

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// ErrBusy is returned when no slot frees up in time.
var ErrBusy = errors.New("concurrency limit reached")

// Limiter is a counting semaphore with usage counters.
type Limiter struct {
	max       int32
	timeout   time.Duration
	current   atomic.Int32
	semaphore chan struct{}

	total    atomic.Int64
	rejected atomic.Int64
}

// NewLimiter allows max concurrent holders. Acquire waits at most timeout
// for a slot; zero means wait for the context only.
func NewLimiter(max int, timeout time.Duration) (*Limiter, error) {
	if max <= 0 {
		return nil, fmt.Errorf("max concurrent must be positive, got: %d", max)
	}
	return &Limiter{
		max:       int32(max),
		timeout:   timeout,
		semaphore: make(chan struct{}, max),
	}, nil
}

// Acquire takes a slot, waiting up to the configured timeout.
func (l *Limiter) Acquire(ctx context.Context) error {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	select {
	case l.semaphore <- struct{}{}:
		l.current.Add(1)
		l.total.Add(1)
		return nil
	case <-ctx.Done():
		l.rejected.Add(1)
		return fmt.Errorf("%w: %w", ErrBusy, ctx.Err())
	}
}

// TryAcquire takes a slot without blocking.
func (l *Limiter) TryAcquire() bool {
	select {
	case l.semaphore <- struct{}{}:
		l.current.Add(1)
		l.total.Add(1)
		return true
	default:
		l.rejected.Add(1)
		return false
	}
}

// Release returns a slot. Releasing more than acquired panics.
func (l *Limiter) Release() {
	select {
	case <-l.semaphore:
		l.current.Add(-1)
	default:
		panic("concurrency: release without acquire")
	}
}

// Available returns the number of free slots.
func (l *Limiter) Available() int {
	return int(l.max - l.current.Load())
}

// Stats returns usage counters.
func (l *Limiter) Stats() map[string]int64 {
	return map[string]int64{
		"max":      int64(l.max),
		"current":  int64(l.current.Load()),
		"total":    l.total.Load(),
		"rejected": l.rejected.Load(),
	}
}
