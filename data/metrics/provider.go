package metrics

import (
	"fmt"

	"github.com/ncobase/talentsearch/data/config"
	"github.com/redis/go-redis/v9"
)

// NewFromConfig builds a collector on the configured storage. A disabled
// configuration yields a collector without persistence.
func NewFromConfig(cfg *config.Metrics, opts ...Option) (*DataCollector, error) {
	if cfg == nil || !cfg.Enabled {
		return NewDataCollectorWithStorage(nil, 0, opts...), nil
	}

	opts = append([]Option{WithFlushInterval(cfg.FlushInterval)}, opts...)

	switch cfg.Storage {
	case "", "memory":
		return NewDataCollector(cfg.BatchSize, opts...), nil
	case "redis":
		if cfg.Redis == nil || cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("metrics: redis storage requires an address")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		storage := NewRedisStorage(client, cfg.Redis.KeyPrefix, cfg.Redis.Retention)
		return NewDataCollectorWithStorage(storage, cfg.BatchSize, opts...), nil
	}

	return nil, fmt.Errorf("metrics: unknown storage %q", cfg.Storage)
}
