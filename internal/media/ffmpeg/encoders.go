package ffmpeg

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// EncoderType classifies an entry of `ffmpeg -encoders`.
type EncoderType string

const (
	VideoEncoder    EncoderType = "video"
	AudioEncoder    EncoderType = "audio"
	SubtitleEncoder EncoderType = "subtitle"
	UnknownEncoder  EncoderType = "unknown"
)

// Encoder is one line of the encoder table.
type Encoder struct {
	Type        EncoderType
	Name        string
	Description string
	HWAccel     bool
}

var (
	encoderPattern = regexp.MustCompile(`^\s*([VASFXBD\.]{6})\s+(\w+)\s+(.+)$`)
	hwaccelPattern = regexp.MustCompile(`(?i)(nvenc|qsv|amf|vaapi|videotoolbox|v4l2m2m|mediacodec)`)
)

// ListEncoders runs `ffmpeg -hide_banner -encoders` and parses the table.
func (c *Client) ListEncoders(ctx context.Context) ([]Encoder, error) {
	var lines []string
	if err := c.exec.Run(ctx, c.binary, []string{"-hide_banner", "-encoders"}, func(line string) {
		lines = append(lines, line)
	}); err != nil {
		return nil, fmt.Errorf("list encoders: %w", err)
	}
	return ParseEncoders(lines), nil
}

// HasEncoder reports whether ffmpeg lists name. Errors count as absent.
func (c *Client) HasEncoder(ctx context.Context, name string) bool {
	encoders, err := c.ListEncoders(ctx)
	if err != nil {
		return false
	}
	for _, enc := range encoders {
		if enc.Name == name {
			return true
		}
	}
	return false
}

// ParseEncoders parses the lines following the "Encoders:" legend.
func ParseEncoders(lines []string) []Encoder {
	var (
		started bool
		result  []Encoder
	)
	for _, line := range lines {
		if !started {
			if strings.Contains(line, "Encoders:") {
				started = true
			}
			continue
		}
		m := encoderPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		flags, name, desc := m[1], m[2], strings.TrimSpace(m[3])
		enc := Encoder{
			Type:        UnknownEncoder,
			Name:        name,
			Description: desc,
			HWAccel:     hwaccelPattern.MatchString(name) || hwaccelPattern.MatchString(desc),
		}
		switch flags[0] {
		case 'V':
			enc.Type = VideoEncoder
		case 'A':
			enc.Type = AudioEncoder
		case 'S':
			enc.Type = SubtitleEncoder
		}
		result = append(result, enc)
	}
	return result
}
