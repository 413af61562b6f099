// Package logging wraps log/slog with the attribute helpers and handlers the
// rest of snip uses.
//
// Key responsibilities:
//   - Attr constructors and standard field keys so log output stays uniform
//     across the export pipeline, engine session, and CLI.
//   - Console and JSON handlers selected by config.
//   - A no-op logger for tests and optional collaborators.
package logging
