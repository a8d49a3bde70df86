package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sample = `
app_name: talentsearch
run_mode: debug
server:
  port: 9090
  shutdown_timeout: 5s
logger:
  level: 5
  format: text
data:
  search:
    default_engine: opensearch
    default_indexes: [talents, talents_archive]
    opensearch:
      addresses: ["https://localhost:9200"]
observes:
  sentry:
    endpoint: https://key@sentry.example.com/1
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppName != "talentsearch" || cfg.RunMode != "debug" {
		t.Errorf("unexpected app settings %q %q", cfg.AppName, cfg.RunMode)
	}
	if cfg.Server.Addr() != "0.0.0.0:9090" || cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Logger.Level != 5 || cfg.Logger.Format != "text" {
		t.Errorf("unexpected logger config %+v", cfg.Logger)
	}
	if cfg.Data.Search.DefaultEngine != "opensearch" || len(cfg.Data.Search.DefaultIndexes) != 2 {
		t.Errorf("unexpected search config %+v", cfg.Data.Search)
	}
	if !cfg.Data.Search.OpenSearch.Enabled() {
		t.Error("expected opensearch to be enabled")
	}
	if cfg.Observes.Sentry.Endpoint == "" || cfg.Observes.Tracer.SamplingRate != 1.0 {
		t.Errorf("unexpected observes config %+v %+v", cfg.Observes.Sentry, cfg.Observes.Tracer)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("TALENTSEARCH_SERVER_PORT", "7070")

	cfg, err := LoadConfig(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("expected env port 7070, got %d", cfg.Server.Port)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit file")
	}
	if _, err := LoadConfig(writeConfig(t, "server: [")); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("expected defaults without a config file, got %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Server.MaxConcurrentSearches != 64 || cfg.Data.Search.DefaultEngine != "elasticsearch" {
		t.Errorf("unexpected defaults %+v %+v", cfg.Server, cfg.Data.Search)
	}
}
