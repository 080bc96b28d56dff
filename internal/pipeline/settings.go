package pipeline

import (
	"errors"
	"fmt"
	"image/color"

	"vidgen/internal/config"
	"vidgen/internal/encoding"
)

// Settings is the fixed configuration of a Runner. It is copied at
// construction and never mutated by a run.
type Settings struct {
	FFmpegPath  string
	ScratchDir  string
	Width       int
	Height      int
	Background  color.Color
	FrameRate   int
	FadeSeconds float64
	Codecs      encoding.Codecs
}

// SettingsFromConfig derives runner settings from a loaded config.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	if cfg == nil {
		return Settings{}, errors.New("pipeline settings: nil config")
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return Settings{}, fmt.Errorf("pipeline settings: %w", err)
	}
	return Settings{
		FFmpegPath:  cfg.Paths.FFmpegPath,
		ScratchDir:  cfg.ScratchDir(),
		Width:       cfg.Canvas.Width,
		Height:      cfg.Canvas.Height,
		Background:  bg,
		FrameRate:   cfg.Encoding.FrameRate,
		FadeSeconds: cfg.Encoding.FadeSeconds,
		Codecs: encoding.Codecs{
			Software: cfg.Encoding.SoftwareCodec,
			Hardware: cfg.Encoding.HardwareCodec,
		},
	}, nil
}

// OptionsFromConfig returns the configured per-run encoding choices.
func OptionsFromConfig(cfg *config.Config) encoding.Options {
	if cfg == nil {
		return encoding.Options{Quality: encoding.TierHigh}
	}
	tier, _ := encoding.ParseTier(cfg.Encoding.Quality)
	return encoding.Options{
		Quality:  tier,
		Hardware: cfg.Encoding.UseHardware,
		FadeIn:   cfg.Encoding.FadeIn,
		FadeOut:  cfg.Encoding.FadeOut,
	}
}

func (s Settings) withDefaults() Settings {
	if s.Width <= 0 {
		s.Width = 1920
	}
	if s.Height <= 0 {
		s.Height = 1080
	}
	if s.Background == nil {
		s.Background = color.Black
	}
	if s.FrameRate <= 0 {
		s.FrameRate = 30
	}
	if s.FadeSeconds <= 0 {
		s.FadeSeconds = encoding.DefaultFadeSeconds
	}
	return s
}
