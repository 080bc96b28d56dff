// Package config loads, normalizes, and validates vidgen configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// VIDGEN_FFMPEG. The same file doubles as the persisted settings record:
// the CLI writes last-used directories and encoding choices back with Save.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
