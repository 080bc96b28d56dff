package main

import (
	"errors"

	"vidgen/internal/pipeline"
	"vidgen/internal/services"
)

// exitCode maps a failure onto a process exit status so scripts can tell
// the failure kinds apart.
func exitCode(err error) int {
	if errors.Is(err, pipeline.ErrBusy) {
		return 6
	}
	switch pipeline.KindOf(err) {
	case services.KindPrecondition:
		return 2
	case services.KindDecode:
		return 3
	case services.KindEncode:
		return 4
	case services.KindEnvironment:
		return 5
	default:
		return 1
	}
}

// failureHint is the user-facing next step for each failure kind.
func failureHint(kind services.Kind) string {
	switch kind {
	case services.KindPrecondition:
		return "check the track list, the image path and that the output folder is writable"
	case services.KindDecode:
		return "the cover image could not be read; try re-saving it as PNG or JPEG"
	case services.KindEncode:
		return "ffmpeg failed; rerun with --verbose to see its output"
	case services.KindEnvironment:
		return "install ffmpeg or set paths.ffmpeg_path (see `vidgen status`)"
	default:
		return ""
	}
}
