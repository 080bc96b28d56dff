package config

import "runtime"

const (
	defaultConfigPath    = "~/.config/vidgen/config.toml"
	projectConfigName    = "vidgen.toml"
	defaultQuality       = "high"
	defaultFadeSeconds   = 2.0
	defaultFrameRate     = 30
	defaultSoftwareCodec = "libx264"
	defaultCanvasWidth   = 1920
	defaultCanvasHeight  = 1080
	defaultBackground    = "#000000"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"

	envFFmpegPath = "VIDGEN_FFMPEG"
	envTempDir    = "VIDGEN_TEMP_DIR"
)

// QualityTiers lists the accepted quality names from smallest to largest output.
var QualityTiers = []string{"low", "medium", "high", "ultra"}

func defaultHardwareCodec() string {
	if runtime.GOOS == "darwin" {
		return "h264_videotoolbox"
	}
	return "h264_nvenc"
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Encoding: Encoding{
			Quality:       defaultQuality,
			UseHardware:   false,
			FadeIn:        true,
			FadeOut:       true,
			FadeSeconds:   defaultFadeSeconds,
			FrameRate:     defaultFrameRate,
			HardwareCodec: defaultHardwareCodec(),
			SoftwareCodec: defaultSoftwareCodec,
		},
		Canvas: Canvas{
			Width:      defaultCanvasWidth,
			Height:     defaultCanvasHeight,
			Background: defaultBackground,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
