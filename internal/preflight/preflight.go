package preflight

import (
	"context"
	"strings"

	"vidgen/internal/config"
	"vidgen/internal/deps"
	"vidgen/internal/media/ffmpeg"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// Failed reports whether the check failed and is required.
func (r Result) Failed() bool {
	return !r.Passed && !r.Optional
}

// RunAll executes every environment check for the given config.
func RunAll(ctx context.Context, cfg *config.Config, ffmpegStatus deps.Status, opts ...ffmpeg.Option) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckFFmpeg(ctx, ffmpegStatus, opts...),
		CheckHardwareEncoder(ctx, ffmpegStatus, cfg.Encoding.HardwareCodec, opts...),
		CheckDirectoryAccess("Scratch directory", cfg.ScratchDir()),
	}

	if dir := strings.TrimSpace(cfg.Paths.LogDir); dir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", dir))
	}
	if dir := strings.TrimSpace(cfg.Paths.LastOutputDir); dir != "" {
		last := CheckDirectoryAccess("Last output directory", dir)
		last.Optional = true
		results = append(results, last)
	}

	return results
}

// AnyFailed reports whether a required check failed.
func AnyFailed(results []Result) bool {
	for _, r := range results {
		if r.Failed() {
			return true
		}
	}
	return false
}
