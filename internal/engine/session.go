package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"snip/internal/logging"
)

// State describes a session's load lifecycle.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unloaded"
	}
}

// ErrNotLoaded is returned when an operation requires a ready session.
var ErrNotLoaded = errors.New("engine session not loaded")

// Session is the single point of control over one engine instance. Loading is
// one-way per instance; a hung instance is replaced via Handle, never
// resurrected.
type Session struct {
	runtime Runtime
	logger  *slog.Logger

	mu      sync.Mutex
	state   State
	loading chan struct{}

	sinkMu sync.Mutex
	sink   LogLine

	fs *MemFS
}

// NewSession creates an unloaded session around the given runtime.
func NewSession(runtime Runtime, logger *slog.Logger) *Session {
	return &Session{
		runtime: runtime,
		logger:  logging.NewComponentLogger(logger, "engine"),
		fs:      NewMemFS(),
	}
}

// EnsureLoaded loads the engine if needed. Ready sessions return immediately;
// concurrent callers during loading wait for the in-flight load. On failure
// the state returns to unloaded so a later attempt can retry.
func (s *Session) EnsureLoaded(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateReady:
		s.mu.Unlock()
		return nil
	case StateLoading:
		done := s.loading
		s.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
		s.mu.Lock()
		ready := s.state == StateReady
		s.mu.Unlock()
		if !ready {
			return ErrNotLoaded
		}
		return nil
	}
	s.state = StateLoading
	s.loading = make(chan struct{})
	done := s.loading
	s.mu.Unlock()

	s.logger.Info("loading engine")
	err := s.runtime.Load(ctx)

	s.mu.Lock()
	if err != nil {
		s.state = StateUnloaded
	} else {
		s.state = StateReady
	}
	close(done)
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("engine load failed", logging.Error(err))
		return err
	}
	s.logger.Info("engine ready")
	return nil
}

// IsLoaded reports whether the session is ready.
func (s *Session) IsLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateReady
}

// SetLogSink replaces the current log-line subscriber. At most one subscriber
// is active; passing nil restores the no-op sink. The orchestrator installs a
// sink before each export and detaches it afterward so no progress callback
// outlives its job.
func (s *Session) SetLogSink(sink LogLine) {
	s.sinkMu.Lock()
	s.sink = sink
	s.sinkMu.Unlock()
}

func (s *Session) emit(line string) {
	s.sinkMu.Lock()
	sink := s.sink
	s.sinkMu.Unlock()
	if sink != nil {
		sink(line)
	}
}

// WriteInput stores bytes under name in the session's namespace.
func (s *Session) WriteInput(name string, data []byte) error {
	if !s.IsLoaded() {
		return ErrNotLoaded
	}
	s.fs.Write(name, data)
	return nil
}

// ReadOutput returns the bytes stored under name.
func (s *Session) ReadOutput(name string) ([]byte, error) {
	if !s.IsLoaded() {
		return nil, ErrNotLoaded
	}
	return s.fs.Read(name)
}

// Remove deletes a virtual file. Callers treat failures as best-effort
// cleanup; names are fixed and every write overwrites, so a leftover file
// cannot corrupt the next job.
func (s *Session) Remove(name string) error {
	if !s.IsLoaded() {
		return ErrNotLoaded
	}
	return s.fs.Remove(name)
}

// Run invokes the engine with the given argv. The call is not cancellable
// mid-flight; a hung run is handled by replacing the session.
func (s *Session) Run(ctx context.Context, args ...string) error {
	if !s.IsLoaded() {
		return ErrNotLoaded
	}
	return s.runtime.Run(ctx, args, s.fs, s.emit)
}

// Handle owns the current session exclusively and supports hard reset.
type Handle struct {
	mu      sync.Mutex
	factory func() *Session
	current *Session
}

// NewHandle wraps a session factory. The first session is created eagerly.
func NewHandle(factory func() *Session) *Handle {
	return &Handle{factory: factory, current: factory()}
}

// Current returns the session currently owned by the handle.
func (h *Handle) Current() *Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Replace discards the current session and installs a fresh unloaded one.
// This is the only recovery path for a hung engine instance.
func (h *Handle) Replace() *Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = h.factory()
	return h.current
}
