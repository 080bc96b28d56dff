package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateCanvas(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateEncoding() error {
	if !slices.Contains(QualityTiers, c.Encoding.Quality) {
		return fmt.Errorf("encoding.quality must be one of %s (got %q)", strings.Join(QualityTiers, ", "), c.Encoding.Quality)
	}
	if c.Encoding.FadeSeconds < 0 {
		return fmt.Errorf("encoding.fade_seconds must be positive (got %g)", c.Encoding.FadeSeconds)
	}
	if c.Encoding.FrameRate < 1 || c.Encoding.FrameRate > 120 {
		return fmt.Errorf("encoding.frame_rate must be between 1 and 120 (got %d)", c.Encoding.FrameRate)
	}
	return nil
}

func (c *Config) validateCanvas() error {
	// yuv420p needs even dimensions.
	if c.Canvas.Width < 2 || c.Canvas.Width%2 != 0 {
		return fmt.Errorf("canvas.width must be a positive even number (got %d)", c.Canvas.Width)
	}
	if c.Canvas.Height < 2 || c.Canvas.Height%2 != 0 {
		return fmt.Errorf("canvas.height must be a positive even number (got %d)", c.Canvas.Height)
	}
	if _, err := ParseHexColor(c.Canvas.Background); err != nil {
		return fmt.Errorf("canvas.background: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}
