// Package history persists the export-job journal in SQLite.
//
// Every export invocation gets a row at submission; the orchestrator updates
// progress as the engine reports it and records the terminal outcome. The CLI
// reads the journal for `snip history`. The schema is embedded and version
// checked on open.
package history
