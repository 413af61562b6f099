package health_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"snip/internal/engine"
	"snip/internal/health"
	"snip/internal/logging"
	"snip/internal/testsupport"
)

func TestRunCheckReportsAllProbes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	handle := engine.NewHandle(func() *engine.Session {
		return engine.NewSession(engine.NewFFmpegRuntime(cfg.Engine.Binary, cfg.Engine.ProbeBinary, cfg.Paths.ScratchDir), logging.NewNop())
	})
	reporter := health.NewReporter(cfg, handle, logging.NewNop())

	var sunk []health.Entry
	reporter.SetSink(func(entry health.Entry) { sunk = append(sunk, entry) })

	entries := reporter.RunCheck(context.Background())
	if len(entries) != 4 {
		t.Fatalf("entries = %d, want 4 (scratch, binary, probe, session)", len(entries))
	}
	if len(sunk) != len(entries) {
		t.Fatalf("sink saw %d entries, want %d", len(sunk), len(entries))
	}

	results := reporter.Results(context.Background())
	if !health.Ready(results) {
		t.Fatalf("all checks should pass with stub assets: %+v", results)
	}
	for _, entry := range entries {
		if entry.Time.IsZero() {
			t.Fatal("entry missing timestamp")
		}
		if !strings.Contains(entry.Text, "ok") {
			t.Fatalf("entry text = %q", entry.Text)
		}
	}
}

func TestRunCheckFailuresAreReportedNotRaised(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Engine.Binary = filepath.Join(t.TempDir(), "missing-engine")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	reporter := health.NewReporter(cfg, nil, logging.NewNop())
	results := reporter.Results(context.Background())
	if health.Ready(results) {
		t.Fatal("missing engine binary should fail readiness")
	}

	entries := reporter.RunCheck(context.Background())
	failed := false
	for _, entry := range entries {
		if strings.Contains(entry.Text, "FAILED") {
			failed = true
		}
	}
	if !failed {
		t.Fatal("expected a FAILED entry for the missing asset")
	}
}

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	if result := health.CheckDirectoryAccess("Scratch directory", dir); !result.Passed {
		t.Fatalf("accessible dir failed: %+v", result)
	}
	if result := health.CheckDirectoryAccess("Scratch directory", filepath.Join(dir, "absent")); result.Passed {
		t.Fatal("absent dir should fail")
	}
	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if result := health.CheckDirectoryAccess("Scratch directory", file); result.Passed {
		t.Fatal("regular file should fail the directory probe")
	}
}
