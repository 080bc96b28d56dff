// Package compositor letterboxes a still image onto a fixed-size canvas for
// use as the video track of a generated slideshow.
package compositor
