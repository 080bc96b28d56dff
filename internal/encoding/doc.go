// Package encoding maps user-facing options to ffmpeg codec arguments.
//
// A quality tier selects a CRF for the software path or a target bitrate for
// the hardware path. Build picks exactly one of the two profile variants;
// callers switch on the concrete type when they need mode-specific details.
// FilterChain composes the optional fade-in and fade-out video filters.
package encoding
