package preflight

import (
	"context"
	"fmt"
	"time"

	"vidgen/internal/deps"
	"vidgen/internal/media/ffmpeg"
)

const versionTimeout = 5 * time.Second

// CheckFFmpeg reports the resolved ffmpeg binary along with its version
// banner when it runs.
func CheckFFmpeg(ctx context.Context, status deps.Status, opts ...ffmpeg.Option) Result {
	const name = "FFmpeg"

	if !status.Available {
		return Result{Name: name, Detail: status.Summary()}
	}
	checkCtx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	version, err := ffmpeg.New(status.Command, opts...).Version(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", status.Command, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", status.Command, version)}
}

// CheckHardwareEncoder reports whether ffmpeg lists codec. A missing
// hardware encoder is not fatal: runs fall back to software encoding.
func CheckHardwareEncoder(ctx context.Context, status deps.Status, codec string, opts ...ffmpeg.Option) Result {
	name := "Hardware encoder"
	if !status.Available {
		return Result{Name: name, Optional: true, Detail: "ffmpeg unavailable"}
	}
	checkCtx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	if ffmpeg.New(status.Command, opts...).HasEncoder(checkCtx, codec) {
		return Result{Name: name, Optional: true, Passed: true, Detail: fmt.Sprintf("%s available", codec)}
	}
	return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s not listed (software fallback)", codec)}
}
