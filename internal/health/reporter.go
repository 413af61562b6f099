package health

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"snip/internal/config"
	"snip/internal/engine"
	"snip/internal/logging"
)

// Entry is one human-readable diagnostic line with its timestamp.
type Entry struct {
	Time time.Time
	Text string
}

// Reporter runs the diagnostic checks and appends readable lines to an
// optional sink (the UI's log panel).
type Reporter struct {
	cfg    *config.Config
	handle *engine.Handle
	logger *slog.Logger

	mu   sync.Mutex
	sink func(Entry)
}

// NewReporter constructs a reporter over the current configuration and
// engine handle.
func NewReporter(cfg *config.Config, handle *engine.Handle, logger *slog.Logger) *Reporter {
	return &Reporter{
		cfg:    cfg,
		handle: handle,
		logger: logging.NewComponentLogger(logger, "health"),
	}
}

// SetSink replaces the entry subscriber; nil detaches it.
func (r *Reporter) SetSink(sink func(Entry)) {
	r.mu.Lock()
	r.sink = sink
	r.mu.Unlock()
}

// Results executes all checks and returns their raw outcomes.
func (r *Reporter) Results(ctx context.Context) []Result {
	if r.cfg == nil {
		return nil
	}
	results := []Result{
		CheckDirectoryAccess("Scratch directory", r.cfg.Paths.ScratchDir),
		CheckAsset("Engine binary", r.cfg.Engine.Binary),
		CheckAsset("Engine probe binary", r.cfg.Engine.ProbeBinary),
	}
	if r.handle != nil {
		results = append(results, CheckSession(r.handle.Current()))
	}
	return results
}

// RunCheck executes all checks, logs each outcome, appends entries to the
// sink, and returns the entries. Failures are reported, never raised.
func (r *Reporter) RunCheck(ctx context.Context) []Entry {
	results := r.Results(ctx)
	entries := make([]Entry, 0, len(results))
	for _, result := range results {
		entry := Entry{Time: time.Now(), Text: formatResult(result)}
		entries = append(entries, entry)
		if result.Passed {
			r.logger.Info("health check passed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail),
			)
		} else {
			r.logger.Warn("health check failed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail),
				logging.String(logging.FieldErrorHint, "exports may fail until this is resolved"),
			)
		}
		r.emit(entry)
	}
	return entries
}

// Ready reports whether every check passed.
func Ready(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

func (r *Reporter) emit(entry Entry) {
	r.mu.Lock()
	sink := r.sink
	r.mu.Unlock()
	if sink != nil {
		sink(entry)
	}
}

func formatResult(result Result) string {
	status := "ok"
	if !result.Passed {
		status = "FAILED"
	}
	return fmt.Sprintf("%s: %s (%s)", result.Name, status, result.Detail)
}
