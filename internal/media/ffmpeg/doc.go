// Package ffmpeg drives the ffmpeg binary and interprets its diagnostic
// output.
//
// It parses the "Duration:" and "time=" fields ffmpeg writes to stderr,
// splits carriage-return separated status lines, sums track durations with
// the null muxer, and lists available encoders. Encodes themselves are run by
// the pipeline package through the same Executor so tests can substitute a
// scripted binary.
package ffmpeg
