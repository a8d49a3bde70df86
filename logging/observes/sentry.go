package observes

import (
	"context"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/ncobase/talentsearch/ctxutil"
)

type SentryOptions struct {
	Dsn         string
	Name        string
	Release     string
	Environment string
}

// NewSentry is the register sentry
func NewSentry(opt *SentryOptions) error {
	// if not exist sentry config, skip initialization
	if opt == nil || opt.Dsn == "" {
		return nil
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              opt.Dsn,
		AttachStacktrace: true,
		TracesSampleRate: 1.0,
		ServerName:       opt.Name,
		Release:          opt.Release,
		Environment:      opt.Environment,
	})
}

// FlushSentry waits for buffered events to be delivered.
func FlushSentry(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// SentryObserver reports failed talent searches to Sentry.
type SentryObserver struct {
	hub *sentry.Hub
}

// NewSentryObserver reports through hub, or the current hub when nil.
func NewSentryObserver(hub *sentry.Hub) *SentryObserver {
	return &SentryObserver{hub: hub}
}

func (o *SentryObserver) SearchFailed(ctx context.Context, indexes []string, err error) {
	hub := o.hub
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("component", "talent_search")
		scope.SetTag("indexes", strings.Join(indexes, ","))
		if traceID := ctxutil.GetTraceID(ctx); traceID != "" {
			scope.SetTag("trace_id", traceID)
		}
		hub.CaptureException(err)
	})
}

func (o *SentryObserver) SearchSucceeded(context.Context, []string, int) {}
