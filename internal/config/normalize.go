package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEncoding()
	c.normalizeCanvas()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.FFmpegPath) == "" {
		c.Paths.FFmpegPath = strings.TrimSpace(os.Getenv(envFFmpegPath))
	}
	if strings.TrimSpace(c.Paths.TempDir) == "" {
		c.Paths.TempDir = strings.TrimSpace(os.Getenv(envTempDir))
	}

	fields := []struct {
		name  string
		value *string
	}{
		{"paths.ffmpeg_path", &c.Paths.FFmpegPath},
		{"paths.temp_dir", &c.Paths.TempDir},
		{"paths.log_dir", &c.Paths.LogDir},
		{"paths.last_audio_dir", &c.Paths.LastAudioDir},
		{"paths.last_image_dir", &c.Paths.LastImageDir},
		{"paths.last_output_dir", &c.Paths.LastOutputDir},
	}
	for _, field := range fields {
		trimmed := strings.TrimSpace(*field.value)
		if trimmed == "" {
			*field.value = ""
			continue
		}
		// Bare command names such as "ffmpeg" are resolved through PATH later.
		if field.value == &c.Paths.FFmpegPath && !strings.ContainsAny(trimmed, `/\~`) {
			*field.value = trimmed
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
		*field.value = expanded
	}
	return nil
}

func (c *Config) normalizeEncoding() {
	c.Encoding.Quality = strings.ToLower(strings.TrimSpace(c.Encoding.Quality))
	if c.Encoding.Quality == "" {
		c.Encoding.Quality = defaultQuality
	}
	if c.Encoding.FadeSeconds == 0 {
		c.Encoding.FadeSeconds = defaultFadeSeconds
	}
	if c.Encoding.FrameRate == 0 {
		c.Encoding.FrameRate = defaultFrameRate
	}
	c.Encoding.HardwareCodec = strings.TrimSpace(c.Encoding.HardwareCodec)
	if c.Encoding.HardwareCodec == "" {
		c.Encoding.HardwareCodec = defaultHardwareCodec()
	}
	c.Encoding.SoftwareCodec = strings.TrimSpace(c.Encoding.SoftwareCodec)
	if c.Encoding.SoftwareCodec == "" {
		c.Encoding.SoftwareCodec = defaultSoftwareCodec
	}
}

func (c *Config) normalizeCanvas() {
	if c.Canvas.Width == 0 {
		c.Canvas.Width = defaultCanvasWidth
	}
	if c.Canvas.Height == 0 {
		c.Canvas.Height = defaultCanvasHeight
	}
	c.Canvas.Background = strings.TrimSpace(c.Canvas.Background)
	if c.Canvas.Background == "" {
		c.Canvas.Background = defaultBackground
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
