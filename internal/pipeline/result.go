package pipeline

import (
	"time"

	"vidgen/internal/encoding"
)

// Result describes a successful run.
type Result struct {
	RunID      string
	OutputPath string
	Size       int64
	Elapsed    time.Duration
	Mode       encoding.Mode
	Codec      string
	// Duration is the probed audio length; zero when unknown or not probed.
	Duration float64
	FadeOut  bool
	// Warnings lists non-fatal problems such as failed duration probes.
	Warnings []string
}

// Outcome is delivered once by Start when the run ends.
type Outcome struct {
	Result *Result
	Err    error
}
