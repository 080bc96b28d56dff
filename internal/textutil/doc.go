// Package textutil provides small string helpers for file naming and for
// quoting paths handed to ffmpeg.
package textutil
