// Package pipeline runs one video generation pass: validate inputs,
// composite the cover image, optionally probe the audio length for the
// fade-out, then drive the ffmpeg encode while streaming its progress.
//
// A Runner owns at most one active run. Each run gets a private scratch
// directory under the configured temp dir, removed on every exit path, and
// holds an advisory lock on <output>.lock so two processes never write the
// same file. Failures are returned as *Error values classified with the
// services markers.
package pipeline
