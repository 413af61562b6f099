package engine

import "context"

// LogLine receives one line of the engine's textual output stream. It is
// invoked synchronously while the engine runs and must not block.
type LogLine func(line string)

// Runtime is the embedded transcoding engine a Session drives.
type Runtime interface {
	// Load prepares the engine for use. It is called at most once per
	// Session; failure leaves the session unloaded and retryable.
	Load(ctx context.Context) error
	// Run invokes the engine with the given argv. Tokens naming files in fs
	// are resolved inside the engine's private namespace; files the engine
	// produces appear in fs after Run returns. A non-zero engine outcome is
	// reported as an error.
	Run(ctx context.Context, args []string, fs *MemFS, logLine LogLine) error
}
