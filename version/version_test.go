package version

import (
	"encoding/json"
	"runtime/debug"
	"strings"
	"testing"
)

func withBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestGetVersionInfo_FromBuildSettings(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2024-03-09T10:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	info := GetVersionInfo()
	if info.Version != "v1.4.0" || info.Revision != "0123456" || info.BuiltAt != "2024-03-09T10:00:00Z" {
		t.Errorf("unexpected info %+v", info)
	}
	if !info.Modified {
		t.Error("expected modified flag")
	}
}

func TestGetVersionInfo_LdflagsWin(t *testing.T) {
	orig := Version
	Version = "2.0.0"
	t.Cleanup(func() { Version = orig })

	withBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "v1.4.0"}})
	if got := GetVersionInfo().Version; got != "2.0.0" {
		t.Errorf("expected ldflags version, got %s", got)
	}
}

func TestGetVersionInfo_NoBuildInfo(t *testing.T) {
	withBuildInfo(t, nil)
	info := GetVersionInfo()
	if info.Version != Version || info.GoVersion == "" {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestInfoFormats(t *testing.T) {
	info := Info{Version: "1.0.0", Branch: "main", Revision: "abc", BuiltAt: "now", GoVersion: "go1.24"}
	if !strings.Contains(info.String(), "Version: 1.0.0") {
		t.Errorf("unexpected string %q", info.String())
	}
	s, err := info.JSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded Info
	if err := json.Unmarshal([]byte(s), &decoded); err != nil || decoded != info {
		t.Errorf("unexpected json %s", s)
	}
}
