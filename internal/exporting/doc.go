// Package exporting drives one trim export through the engine session.
//
// The orchestrator walks a fixed stage sequence (preparing, loading, writing,
// encoding, reading, finalizing) and resolves to a downloadable artifact or a
// classified failure. While the engine runs, its log stream is mapped to a
// bounded, monotonic 0-100 progress signal, with an advisory stall flag when
// encoding sits at 0% too long.
//
// File names handed to the engine are always synthesized here. The user's
// filename contributes only its extension; everything else is discarded so
// text the engine's argument parser could misread (a protocol prefix, for
// example) never reaches it.
package exporting
