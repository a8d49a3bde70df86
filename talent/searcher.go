package talent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/ncobase/talentsearch/data/search"
	"github.com/ncobase/talentsearch/logging/logger"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/ncobase/talentsearch/talent"

var (
	// ErrNoBackend is reported when a Searcher has no backend.
	ErrNoBackend = errors.New("no search backend")
	// ErrMalformedHit is reported when a hit has no numeric id.
	ErrMalformedHit = errors.New("malformed hit")
)

// Searcher runs talent searches against a backend.
type Searcher struct {
	backend  search.Backend
	now      func() time.Time
	logger   *logger.Logger
	observer Observer
	tracer   trace.Tracer
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithClock sets the clock used when the parameters carry no epoch.
func WithClock(now func() time.Time) Option {
	return func(s *Searcher) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger failures are written to.
func WithLogger(l *logger.Logger) Option {
	return func(s *Searcher) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver sets the observer notified of every outcome.
func WithObserver(o Observer) Option {
	return func(s *Searcher) {
		if o != nil {
			s.observer = o
		}
	}
}

// NewSearcher returns a Searcher borrowing backend.
func NewSearcher(backend search.Backend, opts ...Option) *Searcher {
	s := &Searcher{
		backend:  backend,
		now:      time.Now,
		logger:   logger.StdLogger(),
		observer: NoopObserver{},
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns the ids of visible talents matching params, most recently
// updated first. params["index"] replaces defaultIndexes with that single
// index. Failures are logged and reported, and yield an empty list.
func (s *Searcher) Search(ctx context.Context, defaultIndexes []string, params Params) []int64 {
	p := ResolveParams(params)

	epoch := s.now().Unix()
	if p.HasEpoch {
		epoch = p.Epoch
	}

	indexes := defaultIndexes
	if p.Index != "" {
		indexes = []string{p.Index}
	}

	ctx, span := s.tracer.Start(ctx, "talent.Search", trace.WithAttributes(
		attribute.StringSlice("search.indexes", indexes),
		attribute.Int64("search.epoch", epoch),
	))
	defer span.End()

	ids, err := s.execute(ctx, &search.Request{
		Indexes: slices.Clone(indexes),
		Query:   BuildQuery(p, epoch),
		Sort:    SortSpec(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.EntryWithFields(ctx, logrus.Fields{
			"indexes": indexes,
			"epoch":   epoch,
			"error":   err,
		}).Error("talent search failed")
		s.observer.SearchFailed(ctx, indexes, err)
		return []int64{}
	}

	span.SetAttributes(attribute.Int("search.hits", len(ids)))
	s.logger.EntryWithFields(ctx, logrus.Fields{
		"indexes": indexes,
		"hits":    len(ids),
	}).Debug("talent search")
	s.observer.SearchSucceeded(ctx, indexes, len(ids))
	return ids
}

func (s *Searcher) execute(ctx context.Context, req *search.Request) ([]int64, error) {
	if s.backend == nil {
		return nil, ErrNoBackend
	}

	resp, err := s.backend.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedHit)
	}

	ids := make([]int64, 0, len(resp.Hits))
	for i, hit := range resp.Hits {
		id, ok := hitID(hit)
		if !ok {
			return nil, fmt.Errorf("%w: hit %d (%s) has id %v", ErrMalformedHit, i, hit.ID, hit.Source["id"])
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// hitID reads the numeric id field of the hit document.
func hitID(hit search.Hit) (int64, bool) {
	switch v := hit.Source["id"].(type) {
	case json.Number, float64, float32, int, int32, int64, uint32, uint64:
		return toInt64(v)
	}
	return 0, false
}

// Search runs one talent search on backend with the standard logger.
func Search(ctx context.Context, backend search.Backend, defaultIndexes []string, params Params) []int64 {
	return NewSearcher(backend).Search(ctx, defaultIndexes, params)
}
