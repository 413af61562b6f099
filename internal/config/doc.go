// Package config loads, normalizes, and validates snip's TOML configuration.
//
// Load resolves the config path (explicit flag, then ~/.config/snip), merges
// the file over Default(), expands ~ in paths, and validates the result. The
// embedded sample_config.toml documents every key and backs `snip config init`.
package config
