package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"vidgen/internal/config"
	"vidgen/internal/encoding"
	"vidgen/internal/logging"
	"vidgen/internal/media/ffmpeg"
	"vidgen/internal/pipeline"
	"vidgen/internal/textutil"
)

const progressSteps = 1000

type generateFlags struct {
	image      string
	output     string
	quality    string
	hardware   bool
	fadeIn     bool
	fadeOut    bool
	verbose    bool
	noProgress bool
	noRemember bool
	overwrite  bool
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate <audio-dir | audio files...>",
		Short: "Render the tracks over the cover image into an MP4",
		Long: `Render the tracks over the cover image into an MP4.

Tracks are ordered by the number in their file names (01-intro.mp3 before
2 song.mp3 before 10 outro.mp3); files without a number go last. The image is
letterboxed onto the configured canvas and the audio is re-encoded to AAC.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, ctx, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.image, "image", "i", "", "Cover image (PNG, JPEG, GIF, BMP or TIFF)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: <album>.mp4 in the last output folder)")
	cmd.Flags().StringVarP(&flags.quality, "quality", "q", "", "Quality tier: low, medium, high or ultra")
	cmd.Flags().BoolVar(&flags.hardware, "hardware", false, "Use the hardware encoder when available")
	cmd.Flags().BoolVar(&flags.fadeIn, "fade-in", true, "Fade the picture in at the start")
	cmd.Flags().BoolVar(&flags.fadeOut, "fade-out", true, "Fade the picture out at the end (needs a known duration)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Print ffmpeg progress lines")
	cmd.Flags().BoolVar(&flags.noProgress, "no-progress", false, "Disable the progress bar")
	cmd.Flags().BoolVar(&flags.noRemember, "no-remember", false, "Do not save the used folders to the config file")
	cmd.Flags().BoolVarP(&flags.overwrite, "yes", "y", false, "Overwrite the output file if it exists")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

func runGenerate(cmd *cobra.Command, ctx *commandContext, flags generateFlags, args []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	trackList, audioDir, err := resolveTracks(args)
	if err != nil {
		return err
	}
	image, err := config.ExpandPath(flags.image)
	if err != nil {
		return fmt.Errorf("resolve image path: %w", err)
	}
	output, err := resolveOutput(cfg, flags.output, audioDir)
	if err != nil {
		return err
	}
	if !flags.overwrite {
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("%s already exists (use --yes to overwrite it)", output)
		}
	}
	opts, err := encodingOptions(cmd, cfg, flags)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	showBar := !flags.noProgress && !flags.verbose && isTerminal(stderr)
	logger, err := ctx.logger(cmd, showBar)
	if err != nil {
		return err
	}
	settings, err := pipeline.SettingsFromConfig(cfg)
	if err != nil {
		return err
	}
	runner := pipeline.New(settings, pipeline.WithLogger(logger))

	display := newProgressDisplay(stderr, showBar, flags.verbose)
	res, err := runner.Run(cmd.Context(), pipeline.Request{
		Tracks:  trackList,
		Image:   image,
		Output:  output,
		Options: opts,
	}, pipeline.Sinks{Progress: display, Log: display})
	display.finish()
	if err != nil {
		if errors.Is(err, pipeline.ErrBusy) {
			return err
		}
		if hint := failureHint(pipeline.KindOf(err)); hint != "" {
			fmt.Fprintf(stderr, "Hint: %s\n", hint)
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Video written to %s\n", res.OutputPath)
	fmt.Fprintf(out, "  Tracks:   %d\n", len(trackList))
	fmt.Fprintf(out, "  Size:     %s\n", humanize.Bytes(uint64(res.Size)))
	fmt.Fprintf(out, "  Elapsed:  %s\n", res.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(out, "  Encoder:  %s (%s)\n", res.Mode, res.Codec)
	fmt.Fprintf(out, "  Fade-out: %s\n", yesNo(res.FadeOut))
	for _, warning := range res.Warnings {
		fmt.Fprintf(out, "  Warning:  %s\n", warning)
	}

	if !flags.noRemember && ctx.configPath != "" {
		cfg.Remember(audioDir, filepath.Dir(image), filepath.Dir(res.OutputPath))
		if err := config.Save(ctx.configPath, cfg); err != nil {
			logging.WarnWithContext(logger, "remember folders failed", "config_save_failed",
				logging.String("config", ctx.configPath),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check that the config directory is writable"),
				logging.String(logging.FieldImpact, "last-used folders are not remembered"),
			)
		}
	}
	return nil
}

// resolveOutput picks the output path. Without an explicit value the file is
// named after the album folder and placed in the last output folder, or next
// to the album when none is remembered.
func resolveOutput(cfg *config.Config, explicit, audioDir string) (string, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		path, err := config.ExpandPath(explicit)
		if err != nil {
			return "", fmt.Errorf("resolve output path: %w", err)
		}
		return textutil.EnsureExtension(path, ".mp4"), nil
	}
	dir := strings.TrimSpace(cfg.Paths.LastOutputDir)
	if dir == "" {
		dir = filepath.Dir(audioDir)
	}
	return filepath.Join(dir, albumFileName(audioDir)), nil
}

func albumFileName(audioDir string) string {
	name := strings.TrimSpace(filepath.Base(audioDir))
	name = strings.NewReplacer("_", " ", ".", " ").Replace(name)
	name = cases.Title(language.Und).String(strings.Join(strings.Fields(name), " "))
	name = textutil.SanitizeFileName(name)
	if name == "" || name == string(filepath.Separator) {
		name = "video"
	}
	return textutil.EnsureExtension(name, ".mp4")
}

// encodingOptions merges config defaults with flags the user actually set.
func encodingOptions(cmd *cobra.Command, cfg *config.Config, flags generateFlags) (encoding.Options, error) {
	opts := pipeline.OptionsFromConfig(cfg)
	if cmd.Flags().Changed("quality") {
		tier, ok := encoding.ParseTier(flags.quality)
		if !ok {
			return opts, fmt.Errorf("unknown quality %q (want low, medium, high or ultra)", flags.quality)
		}
		opts.Quality = tier
	}
	if cmd.Flags().Changed("hardware") {
		opts.Hardware = flags.hardware
	}
	if cmd.Flags().Changed("fade-in") {
		opts.FadeIn = flags.fadeIn
	}
	if cmd.Flags().Changed("fade-out") {
		opts.FadeOut = flags.fadeOut
	}
	return opts, nil
}

// progressDisplay renders pipeline sinks on the terminal: a progress bar
// when attached to a TTY, otherwise one line per 10%.
type progressDisplay struct {
	out     io.Writer
	bar     *progressbar.ProgressBar
	sampler *logging.ProgressSampler
	verbose bool
}

func newProgressDisplay(out io.Writer, showBar, verbose bool) *progressDisplay {
	d := &progressDisplay{out: out, verbose: verbose}
	if showBar {
		d.bar = progressbar.NewOptions64(progressSteps,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetDescription("Encoding"),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	} else {
		d.sampler = logging.NewProgressSampler(10)
	}
	return d
}

func (d *progressDisplay) Progress(fraction float64) {
	if d.bar != nil {
		_ = d.bar.Set64(int64(fraction * progressSteps))
		return
	}
	if d.sampler.ShouldLog(fraction*100, "encoding") {
		fmt.Fprintf(d.out, "Progress: %3.0f%%\n", fraction*100)
	}
}

func (d *progressDisplay) Line(text string) {
	if ffmpeg.IsProgressLine(text) && !d.verbose {
		return
	}
	if d.bar != nil {
		_ = d.bar.Clear()
	}
	fmt.Fprintln(d.out, text)
}

func (d *progressDisplay) finish() {
	if d.bar != nil {
		_ = d.bar.Finish()
	}
}
