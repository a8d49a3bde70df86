package search

import (
	"context"
	"fmt"

	"github.com/ncobase/talentsearch/data/config"
	"github.com/sony/gobreaker"
)

// breakerAdapter short-circuits searches while an engine keeps failing.
// It never retries: an open breaker fails the request immediately.
type breakerAdapter struct {
	Adapter
	cb *gobreaker.CircuitBreaker
}

// WithBreaker wraps adapter in a circuit breaker configured by cfg.
func WithBreaker(adapter Adapter, cfg *config.Breaker) Adapter {
	minRequests := cfg.MinRequests
	failureRatio := cfg.FailureRatio

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        fmt.Sprintf("search-%s", adapter.Type()),
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests == 0 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= minRequests && ratio >= failureRatio
		},
	})

	return &breakerAdapter{Adapter: adapter, cb: cb}
}

func (b *breakerAdapter) Search(ctx context.Context, req *Request) (*Response, error) {
	resp, err := b.cb.Execute(func() (any, error) {
		return b.Adapter.Search(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return resp.(*Response), nil
}

// State reports the breaker state, e.g. "closed" or "open".
func (b *breakerAdapter) State() string {
	return b.cb.State().String()
}
