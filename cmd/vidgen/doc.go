// Package main hosts the vidgen CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration (TOML file, dotenv and
// VIDGEN_* fallbacks), builds the structured logger, and hands work to the
// internal packages: generate drives the pipeline runner, tracks and probe
// preview ordering and durations, status runs the preflight checks and clean
// removes scratch folders left by interrupted runs.
//
// Keep this package thin. New behaviour belongs in internal packages first
// and is surfaced here through commands or flags.
package main
