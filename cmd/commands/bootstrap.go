package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/ncobase/talentsearch/config"
	"github.com/ncobase/talentsearch/data/metrics"
	"github.com/ncobase/talentsearch/data/search"
	"github.com/ncobase/talentsearch/logging/logger"
	"github.com/ncobase/talentsearch/logging/observes"
	"github.com/ncobase/talentsearch/talent"
	"github.com/ncobase/talentsearch/version"

	// engines register their adapter factories
	_ "github.com/ncobase/talentsearch/data/elasticsearch"
	_ "github.com/ncobase/talentsearch/data/meilisearch"
	_ "github.com/ncobase/talentsearch/data/opensearch"
)

// app holds the wired components shared by the commands.
type app struct {
	cfg       *config.Config
	logger    *logger.Logger
	collector *metrics.DataCollector
	client    *search.Client
	searcher  *talent.Searcher

	cleanups []func()
}

// bootstrap loads the configuration and wires logging, observability,
// metrics and the search client.
func bootstrap(configFile string) (*app, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a := &app{cfg: cfg, logger: logger.StdLogger()}
	info := version.GetVersionInfo()
	a.logger.SetVersion(info.Version)

	cleanupLog, err := a.logger.Init(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	a.onClose(cleanupLog)

	observers := []talent.Observer{}
	if s := cfg.Observes.Sentry; s != nil && s.Endpoint != "" {
		if err := observes.NewSentry(&observes.SentryOptions{
			Dsn:         s.Endpoint,
			Name:        cfg.AppName,
			Release:     firstNonEmpty(s.Release, info.Version),
			Environment: firstNonEmpty(s.Environment, cfg.RunMode),
		}); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to init sentry: %w", err)
		}
		a.onClose(func() { observes.FlushSentry(2 * time.Second) })
		observers = append(observers, observes.NewSentryObserver(nil))
	}

	if t := cfg.Observes.Tracer; t != nil && t.Endpoint != "" {
		shutdown, err := observes.NewTracer(&observes.TracerOption{
			URL:                t.Endpoint,
			Name:               firstNonEmpty(t.ServiceName, cfg.AppName),
			Version:            info.Version,
			Branch:             info.Branch,
			Revision:           info.Revision,
			Environment:        firstNonEmpty(t.Environment, cfg.RunMode),
			SamplingRate:       t.SamplingRate,
			BatchTimeout:       t.BatchTimeout,
			ExportTimeout:      t.ExportTimeout,
			MaxExportBatchSize: t.MaxExportBatchSize,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to init tracer: %w", err)
		}
		a.onClose(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		})
	}

	a.collector, err = metrics.NewFromConfig(cfg.Data.Metrics, metrics.WithLogger(a.logger))
	if err != nil {
		a.Close()
		return nil, err
	}
	a.onClose(func() {
		if err := a.collector.Close(); err != nil {
			a.logger.Warnf(context.Background(), "failed to close metrics collector: %v", err)
		}
	})
	observers = append(observers, a.collector)

	a.client, err = search.NewClientFromConfig(cfg.Data.Search, a.collector)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}

	a.searcher = talent.NewSearcher(a.client,
		talent.WithLogger(a.logger),
		talent.WithObserver(talent.Observers(observers...)),
	)
	return a, nil
}

func (a *app) onClose(fn func()) {
	if fn != nil {
		a.cleanups = append(a.cleanups, fn)
	}
}

// Close runs the cleanups in reverse order.
func (a *app) Close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
