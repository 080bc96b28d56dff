package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"vidgen/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Encoding contains the user-facing encoder choices plus the fixed tuning
// knobs shared by every run.
type Encoding struct {
	Quality       string  `toml:"quality"`
	UseHardware   bool    `toml:"use_hardware"`
	FadeIn        bool    `toml:"fade_in"`
	FadeOut       bool    `toml:"fade_out"`
	FadeSeconds   float64 `toml:"fade_seconds"`
	FrameRate     int     `toml:"frame_rate"`
	HardwareCodec string  `toml:"hardware_codec"`
	SoftwareCodec string  `toml:"software_codec"`
}

// Canvas describes the composited background frame.
type Canvas struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
}

// Paths contains binary, scratch and last-used directory locations.
type Paths struct {
	FFmpegPath    string `toml:"ffmpeg_path"`
	TempDir       string `toml:"temp_dir"`
	LogDir        string `toml:"log_dir"`
	LastAudioDir  string `toml:"last_audio_dir"`
	LastImageDir  string `toml:"last_image_dir"`
	LastOutputDir string `toml:"last_output_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for vidgen.
//
// Configuration sections by subsystem:
//   - Encoding: quality tier, hardware toggle, fades, frame rate and codecs
//   - Canvas: output frame size and letterbox fill
//   - Paths: ffmpeg binary, scratch directory and last-used directories
//   - Logging: log format and level
type Config struct {
	Encoding Encoding `toml:"encoding"`
	Canvas   Canvas   `toml:"canvas"`
	Paths    Paths    `toml:"paths"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Save writes the configuration back to path as TOML, replacing the file
// atomically.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("save config: nil config")
	}
	target, err := expandPath(path)
	if err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := fileutil.WriteFileAtomic(target, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Remember records the directories used by the last successful run. Empty
// values leave the previous entry untouched.
func (c *Config) Remember(audioDir, imageDir, outputDir string) {
	if dir := strings.TrimSpace(audioDir); dir != "" {
		c.Paths.LastAudioDir = dir
	}
	if dir := strings.TrimSpace(imageDir); dir != "" {
		c.Paths.LastImageDir = dir
	}
	if dir := strings.TrimSpace(outputDir); dir != "" {
		c.Paths.LastOutputDir = dir
	}
}

// BackgroundColor parses the canvas fill colour.
func (c *Config) BackgroundColor() (color.NRGBA, error) {
	return ParseHexColor(c.Canvas.Background)
}

// ScratchDir returns the directory that hosts per-run scratch folders.
func (c *Config) ScratchDir() string {
	if dir := strings.TrimSpace(c.Paths.TempDir); dir != "" {
		return dir
	}
	return os.TempDir()
}

// ParseHexColor parses #rgb or #rrggbb into an opaque colour.
func ParseHexColor(value string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(value), "#")
	out := color.NRGBA{A: 0xff}
	hex := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}
	var digits [6]uint8
	switch len(s) {
	case 3:
		for i := 0; i < 3; i++ {
			d, ok := hex(s[i])
			if !ok {
				return out, fmt.Errorf("invalid colour %q", value)
			}
			digits[2*i], digits[2*i+1] = d, d
		}
	case 6:
		for i := 0; i < 6; i++ {
			d, ok := hex(s[i])
			if !ok {
				return out, fmt.Errorf("invalid colour %q", value)
			}
			digits[i] = d
		}
	default:
		return out, fmt.Errorf("invalid colour %q", value)
	}
	out.R = digits[0]<<4 | digits[1]
	out.G = digits[2]<<4 | digits[3]
	out.B = digits[4]<<4 | digits[5]
	return out, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
