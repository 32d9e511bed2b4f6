// Package config loads bindkit settings.
//
// Settings are resolved in layers, later layers overriding earlier ones:
//
//  1. built-in defaults
//  2. bindkit.toml (or the file given with --config)
//  3. BINDKIT_* environment variables
//
// Example file:
//
//	[log]
//	level = "debug"
//
//	[manifest]
//	strict   = true
//	debounce = "250ms"
//
//	[script]
//	timeout = "2s"
//
//	[collation]
//	language = "de"
//
// Environment variables use the section and key in upper case, for example
// BINDKIT_LOG_LEVEL, BINDKIT_MANIFEST_STRICT or BINDKIT_SCRIPT_TIMEOUT.
package config
