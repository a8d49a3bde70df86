package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	dc "github.com/ncobase/talentsearch/data/config"
	lc "github.com/ncobase/talentsearch/logging/logger/config"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "TALENTSEARCH"

// Config represents the configuration implementation.
type Config struct {
	AppName  string
	RunMode  string
	Server   *Server
	Logger   *lc.Config
	Data     *dc.Config
	Observes *Observes
	Viper    *viper.Viper
}

// Server HTTP server config struct
type Server struct {
	Host            string        `json:"host" yaml:"host"`
	Port            int           `json:"port" yaml:"port"`
	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`

	// MaxConcurrentSearches bounds in-flight talent searches, 0 disables it.
	MaxConcurrentSearches int           `json:"max_concurrent_searches" yaml:"max_concurrent_searches"`
	AcquireTimeout        time.Duration `json:"acquire_timeout" yaml:"acquire_timeout"`
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig loads the configuration from configPath, or from the default
// search paths when configPath is empty.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("/etc/talentsearch")
		v.AddConfigPath("$HOME/.talentsearch")
		v.AddConfigPath(".")
		if ex, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(ex))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// without an explicit path, defaults and environment are enough
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return FromViper(v), nil
}

// FromViper builds the configuration from an already populated viper.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		AppName:  getStringOrDefault(v, "app_name", "talentsearch"),
		RunMode:  getStringOrDefault(v, "run_mode", "release"),
		Server:   getServerConfig(v),
		Logger:   lc.GetConfig(v),
		Data:     dc.GetConfig(v),
		Observes: getObservesConfig(v),
		Viper:    v,
	}
}

func getServerConfig(v *viper.Viper) *Server {
	return &Server{
		Host:            getStringOrDefault(v, "server.host", "0.0.0.0"),
		Port:            getIntOrDefault(v, "server.port", 8080),
		ReadTimeout:     getDurationOrDefault(v, "server.read_timeout", 10*time.Second),
		WriteTimeout:    getDurationOrDefault(v, "server.write_timeout", 30*time.Second),
		ShutdownTimeout: getDurationOrDefault(v, "server.shutdown_timeout", 15*time.Second),

		MaxConcurrentSearches: getIntOrDefault(v, "server.max_concurrent_searches", 64),
		AcquireTimeout:        getDurationOrDefault(v, "server.acquire_timeout", 2*time.Second),
	}
}

var watchMu sync.Mutex

// Watch watches the configuration file and calls callback with the
// reloaded configuration when it changes.
func Watch(cfg *Config, callback func(*Config)) {
	v := cfg.Viper
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		watchMu.Lock()
		defer watchMu.Unlock()
		callback(FromViper(v))
	})
	v.WatchConfig()
}
