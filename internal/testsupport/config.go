package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"vidgen/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.TempDir = filepath.Join(base, "tmp")
	cfgVal.Canvas.Width = 64
	cfgVal.Canvas.Height = 36
	if err := os.MkdirAll(cfgVal.Paths.TempDir, 0o755); err != nil {
		t.Fatalf("mkdir temp dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithQuality sets the configured quality tier.
func WithQuality(tier string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Encoding.Quality = tier
	}
}

// WithFakeFFmpeg writes a shell stand-in for ffmpeg (see FakeFFmpegScript)
// and points the config at it.
func WithFakeFFmpeg(opts FakeFFmpegOptions) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		target := filepath.Join(binDir, "ffmpeg")
		if err := os.WriteFile(target, []byte(FakeFFmpegScript(opts)), 0o755); err != nil {
			b.t.Fatalf("write fake ffmpeg: %v", err)
		}
		b.cfg.Paths.FFmpegPath = target
	}
}

// WithMissingFFmpeg points the config at an ffmpeg path that does not exist.
func WithMissingFFmpeg() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.FFmpegPath = filepath.Join(b.baseDir, "bin", "ffmpeg-missing")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.TempDir)
}
