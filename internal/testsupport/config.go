// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"snip/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories and stub
// engine binaries per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.ScratchDir = filepath.Join(base, "scratch")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Engine.Binary = StubBinary(t, base, "engine", "#!/bin/sh\nexit 0\n")
	cfg.Engine.ProbeBinary = StubBinary(t, base, "probe", "#!/bin/sh\necho 20.0\n")
	cfg.Export.ResolveDelayMS = 0

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithEngineScript replaces the stub engine binary with the given script.
func WithEngineScript(t testing.TB, script string) ConfigOption {
	return func(cfg *config.Config) {
		dir := filepath.Dir(cfg.Engine.Binary)
		cfg.Engine.Binary = StubBinary(t, dir, "engine", script)
	}
}

// StubBinary writes an executable script under dir and returns its path.
func StubBinary(t testing.TB, dir, name, script string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}
