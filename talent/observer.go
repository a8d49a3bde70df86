package talent

import "context"

// Observer is told about the outcome of every search. Failures are only
// visible through it and the logs, since Search returns an empty list.
type Observer interface {
	SearchFailed(ctx context.Context, indexes []string, err error)
	SearchSucceeded(ctx context.Context, indexes []string, hits int)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) SearchFailed(context.Context, []string, error)  {}
func (NoopObserver) SearchSucceeded(context.Context, []string, int) {}

type multiObserver []Observer

// Observers fans events out to every non-nil observer.
func Observers(observers ...Observer) Observer {
	var m multiObserver
	for _, o := range observers {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}

func (m multiObserver) SearchFailed(ctx context.Context, indexes []string, err error) {
	for _, o := range m {
		o.SearchFailed(ctx, indexes, err)
	}
}

func (m multiObserver) SearchSucceeded(ctx context.Context, indexes []string, hits int) {
	for _, o := range m {
		o.SearchSucceeded(ctx, indexes, hits)
	}
}
