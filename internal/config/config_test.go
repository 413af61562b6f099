package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"snip/internal/config"
)

func TestLoadDefaultsWhenFileAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("config file should not exist")
	}
	if resolved != path {
		t.Fatalf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Engine.Binary != "ffmpeg" || cfg.Engine.ProbeBinary != "ffprobe" {
		t.Fatalf("engine defaults = %+v", cfg.Engine)
	}
	if cfg.Export.MaxInputMiB != 1024 {
		t.Fatalf("max_input_mib = %d, want 1024", cfg.Export.MaxInputMiB)
	}
	if cfg.MaxInputBytes() != int64(1)<<30 {
		t.Fatalf("MaxInputBytes = %d, want 1 GiB", cfg.MaxInputBytes())
	}
	if cfg.Export.StallTimeoutSeconds != 5 {
		t.Fatalf("stall_timeout_seconds = %d, want 5", cfg.Export.StallTimeoutSeconds)
	}
	if cfg.Export.ResolveDelayMS != 1000 {
		t.Fatalf("resolve_delay_ms = %d, want 1000", cfg.Export.ResolveDelayMS)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "config.toml")
	content := `
[paths]
scratch_dir = "` + filepath.Join(base, "scratch") + `"

[engine]
binary = " /opt/engine/ffmpeg "

[export]
max_input_mib = 512

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("config file should exist")
	}
	if cfg.Engine.Binary != "/opt/engine/ffmpeg" {
		t.Fatalf("binary = %q", cfg.Engine.Binary)
	}
	if cfg.Export.MaxInputMiB != 512 {
		t.Fatalf("max_input_mib = %d", cfg.Export.MaxInputMiB)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
	if !filepath.IsAbs(cfg.Paths.ScratchDir) {
		t.Fatalf("scratch dir not absolute: %q", cfg.Paths.ScratchDir)
	}
}

func TestLoadRejectsBadLoggingFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("error = %v, want logging.format complaint", err)
	}
}

func TestExpandsHomeInPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[paths]\nlog_dir = \"~/snip-test-logs\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Paths.LogDir != filepath.Join(home, "snip-test-logs") {
		t.Fatalf("log_dir = %q", cfg.Paths.LogDir)
	}
}

func TestSampleConfigParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(config.SampleConfig()), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config must load cleanly: %v", err)
	}
}

func TestHelperPaths(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.ScratchDir = "/tmp/snip-scratch"
	cfg.Paths.LogDir = "/tmp/snip-logs"
	if cfg.LockPath() != "/tmp/snip-scratch/snip.lock" {
		t.Fatalf("LockPath = %q", cfg.LockPath())
	}
	if cfg.HistoryDBPath() != "/tmp/snip-logs/history.db" {
		t.Fatalf("HistoryDBPath = %q", cfg.HistoryDBPath())
	}
}
