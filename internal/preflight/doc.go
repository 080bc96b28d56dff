// Package preflight provides readiness checks for the ffmpeg binary and the
// filesystem paths vidgen depends on.
//
// These checks run in two contexts:
//   - The pipeline validates inputs and the output location with the
//     individual check functions before creating any scratch files.
//   - The CLI "vidgen status" command calls RunAll to display environment
//     health.
//
// Checks marked Optional report information without failing the run.
package preflight
