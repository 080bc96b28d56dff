package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"vidgen/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level       string
	Format      string
	OutputPaths []string
	Development bool
	// Console, when set, replaces the "stderr" and "stdout" entries of
	// OutputPaths. File paths are still opened.
	Console io.Writer
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	level := new(slog.LevelVar)
	level.Set(parseLevel(opts.Level))
	addSource := opts.Development || level.Level() <= slog.LevelDebug

	var build func(io.Writer) slog.Handler
	switch format := strings.ToLower(strings.TrimSpace(opts.Format)); format {
	case "", "console":
		build = func(w io.Writer) slog.Handler { return newPrettyHandler(w, level, addSource) }
	case "json":
		build = func(w io.Writer) slog.Handler {
			return slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level:       level,
				AddSource:   addSource,
				ReplaceAttr: jsonReplaceAttr,
			})
		}
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	paths := opts.OutputPaths
	if len(paths) == 0 {
		paths = []string{"stderr"}
	}
	writer, err := openWriters(paths, opts.Console)
	if err != nil {
		return nil, err
	}
	return slog.New(build(writer)), nil
}

// FromConfigOption adjusts the options NewFromConfig derives from config.
type FromConfigOption func(*Options)

// WithLevel overrides logging.level when level is non-empty.
func WithLevel(level string) FromConfigOption {
	return func(o *Options) {
		if level = strings.TrimSpace(level); level != "" {
			o.Level = level
		}
	}
}

// WithFormat overrides logging.format when format is non-empty.
func WithFormat(format string) FromConfigOption {
	return func(o *Options) {
		if format = strings.TrimSpace(format); format != "" {
			o.Format = format
		}
	}
}

// WithConsole sends console output to w instead of the process stderr.
func WithConsole(w io.Writer) FromConfigOption {
	return func(o *Options) { o.Console = w }
}

// NewFromConfig creates a logger using application config defaults. Log lines
// go to stderr so stdout stays free for command output, and are mirrored to
// vidgen.log when a log directory is configured.
func NewFromConfig(cfg *config.Config, overrides ...FromConfigOption) (*slog.Logger, error) {
	opts := Options{Level: "info", Format: "console", OutputPaths: []string{"stderr"}}
	if cfg != nil {
		opts.Level = cfg.Logging.Level
		opts.Format = cfg.Logging.Format
		if dir := strings.TrimSpace(cfg.Paths.LogDir); dir != "" {
			opts.OutputPaths = append(opts.OutputPaths, filepath.Join(dir, "vidgen.log"))
		}
	}
	for _, override := range overrides {
		override(&opts)
	}
	return New(opts)
}

// jsonReplaceAttr shortens the built-in keys: "ts" in UTC RFC3339 with
// milliseconds, lower-case levels and file:line sources.
func jsonReplaceAttr(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return attr
	}
	switch attr.Key {
	case slog.TimeKey:
		attr.Key = "ts"
		if attr.Value.Kind() == slog.KindTime {
			attr.Value = slog.StringValue(attr.Value.Time().UTC().Format("2006-01-02T15:04:05.000Z07:00"))
		}
	case slog.LevelKey:
		attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
	case slog.SourceKey:
		if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
			attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
		}
	}
	return attr
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openWriters(paths []string, console io.Writer) (io.Writer, error) {
	seen := map[string]struct{}{}
	var writers []io.Writer
	consoleAdded := false

	for _, path := range paths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}

		var target io.Writer
		switch trimmed {
		case "stdout", "stderr":
			switch {
			case console != nil && consoleAdded:
				continue
			case console != nil:
				target, consoleAdded = console, true
			case trimmed == "stdout":
				target = os.Stdout
			default:
				target = os.Stderr
			}
		default:
			if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
				return nil, fmt.Errorf("create log directory for %s: %w", trimmed, err)
			}
			file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
			if err != nil {
				return nil, fmt.Errorf("open log file %s: %w", trimmed, err)
			}
			target = file
		}
		writers = append(writers, target)
	}

	switch len(writers) {
	case 0:
		if console != nil {
			return console, nil
		}
		return os.Stderr, nil
	case 1:
		return writers[0], nil
	default:
		return io.MultiWriter(writers...), nil
	}
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN "
	case level >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}
