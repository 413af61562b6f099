// Package health issues the diagnostic checks behind `snip health`.
//
// Checks are pure diagnostics: capability of the scratch namespace, the
// reachability of the two engine assets, and the session's loaded flag. A
// failing probe is reported and logged, never raised, and nothing here blocks
// an export.
package health
