// Package services defines shared utilities consumed by the pipeline stages
// and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs and stage names for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     into precondition, decode, probe, encode and environment kinds.
//
// Use these helpers when adding stage logic so failures surface to callers
// with a consistent shape.
package services
