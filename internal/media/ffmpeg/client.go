package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps the ffmpeg invocations used outside of the encode itself.
type Client struct {
	binary string
	exec   Executor
}

// New constructs a client for the given ffmpeg binary.
func New(binary string, opts ...Option) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	c := &Client{binary: binary, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Binary returns the ffmpeg path the client invokes.
func (c *Client) Binary() string { return c.binary }

// ProbeTrack decodes path to the null muxer and returns the first reported
// input duration. ok is false when ffmpeg printed no duration. A duration
// read before ffmpeg failed is still returned, with ok set and err
// describing the failure.
func (c *Client) ProbeTrack(ctx context.Context, path string) (seconds float64, ok bool, err error) {
	if strings.TrimSpace(path) == "" {
		return 0, false, errors.New("probe: empty path")
	}
	args := []string{"-hide_banner", "-i", path, "-f", "null", "-"}
	runErr := c.exec.Run(ctx, c.binary, args, func(line string) {
		if ok {
			return
		}
		if d, found := ParseDuration(line); found {
			seconds, ok = d, true
		}
	})
	if runErr != nil {
		if !ok {
			seconds = 0
		}
		return seconds, ok, fmt.Errorf("probe %s: %w", filepath.Base(path), runErr)
	}
	return seconds, ok, nil
}

// Probe sums the durations of tracks. Tracks that fail or report no duration
// are listed in failures. A track whose duration was printed before ffmpeg
// failed still counts toward total. known is false when no track produced a
// duration.
func (c *Client) Probe(ctx context.Context, tracks []string) (total float64, known bool, failures []string) {
	for _, track := range tracks {
		if ctx.Err() != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", filepath.Base(track), ctx.Err()))
			continue
		}
		seconds, ok, err := c.ProbeTrack(ctx, track)
		switch {
		case err != nil && ok:
			failures = append(failures, err.Error()+" (duration kept)")
			total += seconds
			known = true
		case err != nil:
			failures = append(failures, err.Error())
		case !ok:
			failures = append(failures, fmt.Sprintf("%s: no duration reported", filepath.Base(track)))
		default:
			total += seconds
			known = true
		}
	}
	if total <= 0 {
		return 0, false, failures
	}
	return total, known, failures
}

// Version returns the first line of `ffmpeg -version`.
func (c *Client) Version(ctx context.Context) (string, error) {
	var first string
	err := c.exec.Run(ctx, c.binary, []string{"-version"}, func(line string) {
		if first == "" {
			first = strings.TrimSpace(line)
		}
	})
	if err != nil {
		return "", fmt.Errorf("ffmpeg version: %w", err)
	}
	if first == "" {
		return "", errors.New("ffmpeg version: empty output")
	}
	return first, nil
}
