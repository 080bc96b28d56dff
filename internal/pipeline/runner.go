package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"vidgen/internal/compositor"
	"vidgen/internal/deps"
	"vidgen/internal/encoding"
	"vidgen/internal/fileutil"
	"vidgen/internal/logging"
	"vidgen/internal/media/ffmpeg"
	"vidgen/internal/preflight"
	"vidgen/internal/services"
	"vidgen/internal/textutil"
	"vidgen/internal/tracks"
)

// Request is the input of one run.
type Request struct {
	Tracks  []string
	Image   string
	Output  string
	Options encoding.Options
}

// HardwareProbe reports whether ffmpeg can use the named hardware encoder.
type HardwareProbe func(ctx context.Context, binary, codec string) bool

// Option configures a Runner.
type Option func(*Runner)

// WithExecutor injects the process executor used for probes and the encode.
func WithExecutor(exec ffmpeg.Executor) Option {
	return func(r *Runner) {
		if exec != nil {
			r.exec = exec
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock replaces time.Now for elapsed-time measurement.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithHardwareProbe replaces the `ffmpeg -encoders` lookup.
func WithHardwareProbe(probe HardwareProbe) Option {
	return func(r *Runner) {
		if probe != nil {
			r.hwProbe = probe
		}
	}
}

// WithStateHook observes every state transition.
func WithStateHook(hook func(State)) Option {
	return func(r *Runner) {
		r.hook = hook
	}
}

// Runner turns an ordered track list and a cover image into a video. One
// run may be active at a time; see ErrBusy.
type Runner struct {
	settings Settings
	exec     ffmpeg.Executor
	logger   *slog.Logger
	now      func() time.Time
	hwProbe  HardwareProbe
	hook     func(State)
	orderer  *tracks.Orderer

	busy  atomic.Bool
	mu    sync.Mutex
	state State
}

// New constructs a Runner.
func New(settings Settings, opts ...Option) *Runner {
	r := &Runner{
		settings: settings.withDefaults(),
		exec:     ffmpeg.DefaultExecutor(),
		logger:   logging.NewNop(),
		now:      time.Now,
		orderer:  tracks.NewOrderer(),
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "pipeline")
	if r.hwProbe == nil {
		r.hwProbe = r.listEncoders
	}
	return r
}

// State returns the state of the current or most recent run.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Run executes one pipeline pass and blocks until it ends.
func (r *Runner) Run(ctx context.Context, req Request, sinks Sinks) (*Result, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer r.busy.Store(false)
	return r.run(ctx, req, sinks)
}

// Start executes the run on its own goroutine. The returned channel yields
// exactly one Outcome and is then closed.
func (r *Runner) Start(ctx context.Context, req Request, sinks Sinks) (<-chan Outcome, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	out := make(chan Outcome, 1)
	go func() {
		res, err := r.run(ctx, req, sinks)
		r.busy.Store(false)
		out <- Outcome{Result: res, Err: err}
		close(out)
	}()
	return out, nil
}

// run holds the state of one pass.
type run struct {
	id       string
	ctx      context.Context
	logger   *slog.Logger
	sinks    Sinks
	progress *progressGate
	req      Request
	ffmpeg   string
	tracks   []string
	scratch  string
	lock     *outputLock
	result   Result
}

func (r *Runner) run(ctx context.Context, req Request, sinks Sinks) (res *Result, err error) {
	sinks = sinks.normalized()
	id := uuid.NewString()
	ctx = services.WithRunID(ctx, id)
	rs := &run{
		id:       id,
		ctx:      ctx,
		logger:   logging.WithContext(ctx, r.logger),
		sinks:    sinks,
		progress: newProgressGate(sinks.Progress),
		req:      req,
		result:   Result{RunID: id},
	}
	started := r.now()

	r.setState(StateIdle)
	defer func() {
		if p := recover(); p != nil {
			res, err = nil, newError(r.State(), nil, "panic", fmt.Sprint(p), nil)
		}
		r.cleanup(rs)
		if err != nil {
			r.transition(rs, StateFailed)
			var pe *Error
			if errors.As(err, &pe) {
				logging.ErrorWithContext(rs.logger, "run failed", "run_failed",
					logging.String("kind", string(pe.Kind)),
					logging.String("failed_state", string(pe.State)),
					logging.Error(err),
				)
			}
			return
		}
		r.transition(rs, StateSucceeded)
	}()

	if err := r.validate(rs); err != nil {
		return nil, err
	}
	if err := r.prepareScratch(rs); err != nil {
		return nil, err
	}
	if err := r.composite(rs); err != nil {
		return nil, err
	}
	profile := r.buildProfile(rs)
	total, known := r.probe(rs)
	if err := r.encode(rs, profile, total, known); err != nil {
		return nil, err
	}
	if err := r.finalize(rs); err != nil {
		return nil, err
	}
	rs.result.Elapsed = r.now().Sub(started)
	rs.logger.Info(
		"run succeeded",
		logging.String(logging.FieldEventType, "run_succeeded"),
		logging.String("output", rs.result.OutputPath),
		logging.Int64("size_bytes", rs.result.Size),
		logging.Duration("elapsed", rs.result.Elapsed),
	)
	result := rs.result
	return &result, nil
}

func (r *Runner) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

func (r *Runner) transition(rs *run, next State) {
	r.mu.Lock()
	if !r.state.follows(next) {
		r.mu.Unlock()
		return
	}
	r.state = next
	r.mu.Unlock()

	rs.ctx = services.WithStage(rs.ctx, string(next))
	rs.logger = logging.WithContext(rs.ctx, r.logger)
	rs.logger.Debug("state transition", logging.String(logging.FieldEventType, "state_transition"))
	if r.hook != nil {
		r.hook(next)
	}
}

func (r *Runner) validate(rs *run) error {
	r.transition(rs, StateValidating)

	status := deps.ResolveFFmpeg(r.settings.FFmpegPath)
	if !status.Available {
		return newError(StateValidating, services.ErrEnvironment, "resolve ffmpeg", status.Detail, nil)
	}
	rs.ffmpeg = status.Command
	version, err := ffmpeg.New(rs.ffmpeg, ffmpeg.WithExecutor(r.exec)).Version(rs.ctx)
	if err != nil {
		return newError(StateValidating, services.ErrEnvironment, "run ffmpeg", rs.ffmpeg+" could not be started", err)
	}
	rs.logger.Debug("ffmpeg ready", logging.String("ffmpeg_version", version))

	if len(rs.req.Tracks) == 0 {
		return newError(StateValidating, services.ErrPrecondition, "tracks", "no audio tracks supplied", nil)
	}
	rs.tracks = r.orderer.Order(rs.req.Tracks)
	for _, track := range rs.tracks {
		if check := preflight.CheckReadableFile("track", track); !check.Passed {
			return newError(StateValidating, services.ErrPrecondition, "track", check.Detail, nil)
		}
	}
	if check := preflight.CheckReadableFile("image", rs.req.Image); !check.Passed {
		return newError(StateValidating, services.ErrPrecondition, "image", check.Detail, nil)
	}
	output := strings.TrimSpace(rs.req.Output)
	if output == "" {
		return newError(StateValidating, services.ErrPrecondition, "output", "no output path supplied", nil)
	}
	output, err = filepath.Abs(output)
	if err != nil {
		return newError(StateValidating, services.ErrPrecondition, "output", "resolve output path", err)
	}
	if check := preflight.CheckWritableParent("output", output); !check.Passed {
		return newError(StateValidating, services.ErrPrecondition, "output", check.Detail, nil)
	}
	rs.result.OutputPath = output

	lock, err := lockOutput(output)
	if err != nil {
		return newError(StateValidating, services.ErrPrecondition, "lock output", output, err)
	}
	rs.lock = lock

	rs.logger.Info(
		"inputs validated",
		logging.String(logging.FieldEventType, "inputs_validated"),
		logging.Int("tracks", len(rs.tracks)),
		logging.String("image", rs.req.Image),
		logging.String("output", output),
		logging.String("ffmpeg", rs.ffmpeg),
	)
	return nil
}

func (r *Runner) prepareScratch(rs *run) error {
	base := r.settings.ScratchDir
	if strings.TrimSpace(base) == "" {
		base = os.TempDir()
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return newError(StateValidating, services.ErrEnvironment, "scratch", "create scratch root", err)
	}
	dir := filepath.Join(base, ScratchPrefix+rs.id)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return newError(StateValidating, services.ErrEnvironment, "scratch", "create scratch directory", err)
	}
	rs.scratch = dir
	return nil
}

func (r *Runner) cleanup(rs *run) {
	if rs.scratch != "" {
		if err := fileutil.RemovePaths(rs.scratch); err != nil {
			logging.WarnWithContext(rs.logger, "scratch cleanup failed", "scratch_cleanup_failed",
				logging.String("scratch", rs.scratch),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "run `vidgen clean` to remove leftover scratch directories"),
				logging.String(logging.FieldImpact, "temporary files remain on disk"),
			)
		}
		rs.scratch = ""
	}
	if err := rs.lock.release(); err != nil {
		rs.logger.Debug("release output lock", logging.Error(err))
	}
	rs.lock = nil
}

func (r *Runner) composite(rs *run) error {
	r.transition(rs, StateCompositingImage)

	dst := filepath.Join(rs.scratch, imageName)
	placement, err := compositor.ComposeFile(compositor.Spec{
		Source:     rs.req.Image,
		Width:      r.settings.Width,
		Height:     r.settings.Height,
		Background: r.settings.Background,
	}, dst)
	if err != nil {
		marker := services.ErrDecode
		switch services.KindOf(err) {
		case services.KindPrecondition:
			marker = services.ErrPrecondition
		case services.KindEnvironment:
			marker = services.ErrEnvironment
		}
		return newError(StateCompositingImage, marker, "compose image", filepath.Base(rs.req.Image), err)
	}
	rs.logger.Info(
		"image composited",
		logging.String(logging.FieldEventType, "image_composited"),
		logging.Int("content_width", placement.Width),
		logging.Int("content_height", placement.Height),
		logging.Int("offset_x", placement.X),
		logging.Int("offset_y", placement.Y),
	)
	rs.sinks.Log.Line(fmt.Sprintf("Background prepared: %dx%d canvas", r.settings.Width, r.settings.Height))
	return nil
}

func (r *Runner) buildProfile(rs *run) encoding.Profile {
	opts := rs.req.Options
	available := false
	if opts.Hardware {
		available = r.hwProbe(rs.ctx, rs.ffmpeg, r.settings.Codecs.Hardware)
		if !available {
			logging.WarnWithContext(rs.logger, "hardware encoder unavailable", "hardware_unavailable",
				logging.String("codec", r.settings.Codecs.Hardware),
				logging.String(logging.FieldErrorHint, "install an ffmpeg build with the hardware encoder or disable use_hardware"),
				logging.String(logging.FieldImpact, "encoding falls back to software"),
			)
			rs.sinks.Log.Line("Hardware encoder not available, using software encoding")
		}
	}
	profile := encoding.Build(opts, available, r.settings.Codecs)
	switch p := profile.(type) {
	case encoding.HardwareProfile:
		rs.result.Codec = p.Codec
		rs.logger.Info("encoding profile", logging.String("mode", string(p.Mode())), logging.String("codec", p.Codec), logging.String("bitrate", p.Bitrate))
	case encoding.SoftwareProfile:
		rs.result.Codec = p.Codec
		rs.logger.Info("encoding profile", logging.String("mode", string(p.Mode())), logging.String("codec", p.Codec), logging.Int("crf", p.CRF))
	}
	rs.result.Mode = profile.Mode()
	return profile
}

func (r *Runner) probe(rs *run) (float64, bool) {
	if !rs.req.Options.FadeOut {
		return 0, false
	}
	r.transition(rs, StateProbingDuration)

	client := ffmpeg.New(rs.ffmpeg, ffmpeg.WithExecutor(r.exec))
	total, known, failures := client.Probe(rs.ctx, rs.tracks)
	for _, failure := range failures {
		err := services.Wrap(services.ErrProbe, string(StateProbingDuration), "probe duration", failure, nil)
		logging.WarnWithContext(rs.logger, "duration probe failed", "probe_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the track decodes with ffmpeg"),
			logging.String(logging.FieldImpact, "fade-out timing may be off by this track"),
		)
		rs.result.Warnings = append(rs.result.Warnings, err.Error())
		rs.sinks.Log.Line("Duration probe failed: " + failure)
	}
	if !known {
		rs.sinks.Log.Line("Total duration unknown, fade-out disabled")
		return 0, false
	}
	rs.result.Duration = total
	rs.logger.Info("duration probed",
		logging.String(logging.FieldEventType, "duration_probed"),
		logging.Float64("total_seconds", total),
		logging.Int("failed_tracks", len(failures)),
	)
	return total, true
}

func (r *Runner) encode(rs *run, profile encoding.Profile, total float64, known bool) error {
	r.transition(rs, StateEncoding)

	manifest := filepath.Join(rs.scratch, manifestName)
	if err := writeManifest(manifest, rs.tracks); err != nil {
		return newError(StateEncoding, services.ErrEnvironment, "write manifest", manifest, err)
	}

	opts := rs.req.Options
	filter := encoding.FilterChain(opts.FadeIn, opts.FadeOut, total, known, r.settings.FadeSeconds)
	rs.result.FadeOut = opts.FadeOut && encoding.FadeOutApplies(total, known, r.settings.FadeSeconds)
	if opts.FadeOut && known && !rs.result.FadeOut {
		rs.sinks.Log.Line(fmt.Sprintf("Audio shorter than %.0fs, fade-out skipped", 2*r.settings.FadeSeconds))
	}

	image := filepath.Join(rs.scratch, imageName)
	args := EncodeArgs(manifest, image, r.settings.FrameRate, filter, profile, rs.result.OutputPath)

	rs.sinks.Log.Line("Using FFmpeg: " + rs.ffmpeg)
	rs.sinks.Log.Line(fmt.Sprintf("Encoding: %s (%s)",
		textutil.Ternary(profile.Mode() == encoding.ModeHardware, "Hardware", "Software"), rs.result.Codec))
	rs.sinks.Log.Line("Starting video generation...")
	rs.logger.Info("encode started",
		logging.String(logging.FieldEventType, "encode_started"),
		logging.String("filter", filter),
		logging.Any("args", args),
	)

	tracker := ffmpeg.NewTracker(total, known)
	sampler := logging.NewProgressSampler(10)
	err := r.exec.Run(rs.ctx, rs.ffmpeg, args, func(line string) {
		if strings.TrimSpace(line) == "" {
			return
		}
		if ffmpeg.IsProgressLine(line) {
			rs.sinks.Log.Line(strings.TrimSpace(line))
		}
		if fraction, ok := tracker.Observe(line); ok {
			rs.progress.report(fraction)
			if sampler.ShouldLog(fraction*100, string(StateEncoding)) {
				rs.logger.Info("encode progress",
					logging.String(logging.FieldEventType, "encode_progress"),
					logging.Float64("percent", fraction*100),
				)
			}
		}
	})
	if err != nil {
		if ctxErr := rs.ctx.Err(); ctxErr != nil {
			return newError(StateEncoding, services.ErrEncode, "encode", "run cancelled", ctxErr)
		}
		var exitErr *ffmpeg.ExitError
		if errors.As(err, &exitErr) {
			r.transition(rs, StateFinalizing)
			detail := exitErr.Detail()
			if detail == "" {
				detail = exitErr.Error()
			}
			return newError(StateFinalizing, services.ErrEncode, "ffmpeg", detail, err)
		}
		return newError(StateEncoding, services.ErrEnvironment, "ffmpeg", "could not run encoder", err)
	}
	return nil
}

func (r *Runner) finalize(rs *run) error {
	r.transition(rs, StateFinalizing)

	info, err := os.Stat(rs.result.OutputPath)
	if err != nil {
		return newError(StateFinalizing, services.ErrEncode, "stat output", "ffmpeg reported success but produced no output", err)
	}
	if info.Size() == 0 {
		return newError(StateFinalizing, services.ErrEncode, "stat output", "output file is empty", nil)
	}
	rs.result.Size = info.Size()
	rs.progress.report(1)
	rs.sinks.Log.Line("Video generated successfully!")
	rs.sinks.Log.Line("File size: " + humanize.Bytes(uint64(info.Size())))
	return nil
}

func (r *Runner) listEncoders(ctx context.Context, binary, codec string) bool {
	return ffmpeg.New(binary, ffmpeg.WithExecutor(r.exec)).HasEncoder(ctx, codec)
}
