// Package engine owns the lifecycle of the embedded transcoding engine.
//
// A Session is the single point of control: load-once semantics, a private
// in-memory file namespace for passing input and output without touching the
// user's disk, a single-subscriber log-line stream, and Run for invoking the
// engine with a prepared argv. The production Runtime shells out to an ffmpeg
// binary, staging the virtual files into a scratch directory per invocation.
//
// A Handle wraps the current Session and supports a hard reset: a hung
// instance is discarded and replaced rather than cancelled, since a running
// engine invocation cannot be interrupted mid-flight in a recoverable way.
package engine
