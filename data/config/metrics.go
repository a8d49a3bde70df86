package config

import (
	"time"

	"github.com/spf13/viper"
)

// Metrics data metrics config
type Metrics struct {
	Enabled       bool          `yaml:"enabled" json:"enabled"`
	BatchSize     int           `yaml:"batch_size" json:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval" json:"flush_interval"`
	Storage       string        `yaml:"storage" json:"storage"` // memory or redis
	Redis         *MetricsRedis `yaml:"redis" json:"redis"`
}

// MetricsRedis configures Redis backed metrics storage
type MetricsRedis struct {
	Addr      string        `yaml:"addr" json:"addr"`
	Password  string        `yaml:"password" json:"password"`
	DB        int           `yaml:"db" json:"db"`
	KeyPrefix string        `yaml:"key_prefix" json:"key_prefix"`
	Retention time.Duration `yaml:"retention" json:"retention"`
}

// getMetricsConfig returns metrics config
func getMetricsConfig(v *viper.Viper) *Metrics {
	retention := 7 * 24 * time.Hour
	if v.IsSet("data.metrics.redis.retention") {
		retention = v.GetDuration("data.metrics.redis.retention")
	}

	return &Metrics{
		Enabled:       getBoolOrDefault(v, "data.metrics.enabled", true),
		BatchSize:     getIntOrDefault(v, "data.metrics.batch_size", 100),
		FlushInterval: getDurationOrDefault(v, "data.metrics.flush_interval", 10*time.Second),
		Storage:       getStringOrDefault(v, "data.metrics.storage", "memory"),
		Redis: &MetricsRedis{
			Addr:      v.GetString("data.metrics.redis.addr"),
			Password:  v.GetString("data.metrics.redis.password"),
			DB:        v.GetInt("data.metrics.redis.db"),
			KeyPrefix: getStringOrDefault(v, "data.metrics.redis.key_prefix", "talentsearch"),
			Retention: retention,
		},
	}
}

// getStringOrDefault returns string value or default
func getStringOrDefault(v *viper.Viper, key, defaultValue string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return defaultValue
}

// getIntOrDefault returns int value or default
func getIntOrDefault(v *viper.Viper, key string, defaultValue int) int {
	if v.IsSet(key) {
		return v.GetInt(key)
	}
	return defaultValue
}

// getBoolOrDefault returns bool value or default
func getBoolOrDefault(v *viper.Viper, key string, defaultValue bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return defaultValue
}

// getDurationOrDefault returns duration value or default
func getDurationOrDefault(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	if v.IsSet(key) {
		return v.GetDuration(key)
	}
	return defaultValue
}
