package encoding

import "strconv"

// Mode names the encoder family a profile drives.
type Mode string

const (
	ModeSoftware Mode = "software"
	ModeHardware Mode = "hardware"
)

// Options are the per-run choices supplied by the caller.
type Options struct {
	Quality  Tier
	Hardware bool
	FadeIn   bool
	FadeOut  bool
}

// Codecs names the ffmpeg encoders used for each mode.
type Codecs struct {
	Software string
	Hardware string
}

// DefaultCodecs is used for any empty field of the Codecs passed to Build.
var DefaultCodecs = Codecs{Software: "libx264", Hardware: "h264_videotoolbox"}

// Profile is the resolved encoder configuration for one run. The set of
// implementations is closed: SoftwareProfile and HardwareProfile.
type Profile interface {
	Mode() Mode
	Tier() Tier
	// VideoArgs returns the video codec arguments only.
	VideoArgs() []string
	isProfile()
}

// SoftwareProfile is CRF-controlled encoding on the CPU.
type SoftwareProfile struct {
	Codec   string
	Quality Tier
	CRF     int
}

func (SoftwareProfile) Mode() Mode { return ModeSoftware }
func (p SoftwareProfile) Tier() Tier { return p.Quality }
func (SoftwareProfile) isProfile() {}

func (p SoftwareProfile) VideoArgs() []string {
	return []string{
		"-c:v", p.Codec,
		"-crf", strconv.Itoa(p.CRF),
		"-preset", "medium",
		"-profile:v", "high",
		"-level", "4.2",
		"-pix_fmt", "yuv420p",
	}
}

// HardwareProfile is bitrate-controlled encoding on a media engine.
type HardwareProfile struct {
	Codec   string
	Quality Tier
	Bitrate string
}

func (HardwareProfile) Mode() Mode { return ModeHardware }
func (p HardwareProfile) Tier() Tier { return p.Quality }
func (HardwareProfile) isProfile() {}

func (p HardwareProfile) VideoArgs() []string {
	return []string{
		"-c:v", p.Codec,
		"-b:v", p.Bitrate,
		"-profile:v", "high",
		"-level", "4.2",
		"-pix_fmt", "yuv420p",
		"-color_range", "tv",
		"-colorspace", "bt709",
		"-color_trc", "bt709",
		"-color_primaries", "bt709",
	}
}

// Build resolves opts into a profile. The hardware profile is chosen only
// when it was requested and hwAvailable reports the encoder present.
func Build(opts Options, hwAvailable bool, codecs Codecs) Profile {
	if codecs.Software == "" {
		codecs.Software = DefaultCodecs.Software
	}
	if codecs.Hardware == "" {
		codecs.Hardware = DefaultCodecs.Hardware
	}
	tier, _ := ParseTier(string(opts.Quality))
	q := tier.Quality()
	if opts.Hardware && hwAvailable {
		return HardwareProfile{Codec: codecs.Hardware, Quality: tier, Bitrate: q.Bitrate}
	}
	return SoftwareProfile{Codec: codecs.Software, Quality: tier, CRF: q.CRF}
}

// AudioArgs re-encodes every input to 320 kbps 48 kHz stereo AAC.
func AudioArgs() []string {
	return []string{"-c:a", "aac", "-b:a", "320k", "-ar", "48000", "-ac", "2"}
}

// ContainerArgs are appended to every encode.
func ContainerArgs() []string {
	return []string{"-movflags", "+faststart", "-max_muxing_queue_size", "9999", "-threads", "0"}
}

// Args returns the full codec and container argument list for p: audio,
// then video, then container flags.
func Args(p Profile) []string {
	args := AudioArgs()
	args = append(args, p.VideoArgs()...)
	return append(args, ContainerArgs()...)
}
