package ffmpeg_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vidgen/internal/media/ffmpeg"
	"vidgen/internal/testsupport"
)

type stubExecutor struct {
	calls  [][]string
	output func(args []string) []string
	err    func(args []string) error
}

func (s *stubExecutor) Run(_ context.Context, _ string, args []string, onLine func(string)) error {
	s.calls = append(s.calls, append([]string(nil), args...))
	if s.output != nil && onLine != nil {
		for _, line := range s.output(args) {
			onLine(line)
		}
	}
	if s.err != nil {
		return s.err(args)
	}
	return nil
}

func inputOf(args []string) string {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == "-i" {
			return args[i+1]
		}
	}
	return ""
}

func TestProbeSumsDurations(t *testing.T) {
	durations := map[string]string{
		"a.mp3": "  Duration: 00:01:00.50, start: 0",
		"b.mp3": "  Duration: 00:00:30.25, start: 0",
	}
	stub := &stubExecutor{output: func(args []string) []string {
		return []string{"Input #0", durations[inputOf(args)], "size=N/A time=00:00:10.00"}
	}}
	client := ffmpeg.New("ffmpeg", ffmpeg.WithExecutor(stub))

	total, known, failures := client.Probe(context.Background(), []string{"a.mp3", "b.mp3"})
	if !known || total != 90.75 {
		t.Fatalf("expected 90.75 known, got %v known=%v", total, known)
	}
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}
	want := []string{"-hide_banner", "-i", "a.mp3", "-f", "null", "-"}
	if strings.Join(stub.calls[0], " ") != strings.Join(want, " ") {
		t.Fatalf("unexpected probe args %v", stub.calls[0])
	}
}

func TestProbeReportsFailures(t *testing.T) {
	stub := &stubExecutor{
		output: func(args []string) []string {
			if inputOf(args) == "good.mp3" {
				return []string{"  Duration: 00:00:12.00, start: 0"}
			}
			return []string{"Invalid data found when processing input"}
		},
		err: func(args []string) error {
			if inputOf(args) == "broken.mp3" {
				return &ffmpeg.ExitError{Code: 1, Tail: []string{"Invalid data found when processing input"}}
			}
			return nil
		},
	}
	client := ffmpeg.New("ffmpeg", ffmpeg.WithExecutor(stub))

	total, known, failures := client.Probe(context.Background(), []string{"good.mp3", "silent.mp3", "broken.mp3"})
	if !known || total != 12 {
		t.Fatalf("expected 12 known, got %v known=%v", total, known)
	}
	if len(failures) != 2 {
		t.Fatalf("expected two failures, got %v", failures)
	}
	if !strings.Contains(failures[1], "broken.mp3") || !strings.Contains(failures[1], "code 1") {
		t.Fatalf("unexpected failure text %q", failures[1])
	}
}

func TestProbeKeepsDurationWhenDecodeFails(t *testing.T) {
	stub := &stubExecutor{
		output: func([]string) []string {
			return []string{"  Duration: 00:03:00.00, start: 0", "Error while decoding stream #0:0"}
		},
		err: func([]string) error {
			return &ffmpeg.ExitError{Code: 1, Tail: []string{"Error while decoding stream #0:0"}}
		},
	}
	client := ffmpeg.New("ffmpeg", ffmpeg.WithExecutor(stub))

	seconds, ok, err := client.ProbeTrack(context.Background(), "a.mp3")
	if !ok || seconds != 180 {
		t.Fatalf("expected 180s kept, got %v ok=%v", seconds, ok)
	}
	var exitErr *ffmpeg.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected the exit error to be reported, got %v", err)
	}

	total, known, failures := client.Probe(context.Background(), []string{"a.mp3", "b.mp3"})
	if !known || total != 360 {
		t.Fatalf("expected 360 known, got %v known=%v", total, known)
	}
	if len(failures) != 2 || !strings.Contains(failures[0], "duration kept") {
		t.Fatalf("expected a warning per track, got %v", failures)
	}
}

func TestProbeNothingParsedIsUnknown(t *testing.T) {
	stub := &stubExecutor{}
	client := ffmpeg.New("ffmpeg", ffmpeg.WithExecutor(stub))
	total, known, failures := client.Probe(context.Background(), []string{"x.wav"})
	if known || total != 0 {
		t.Fatalf("expected unknown duration, got %v known=%v", total, known)
	}
	if len(failures) != 1 {
		t.Fatalf("expected one failure, got %v", failures)
	}
}

func TestParseEncoders(t *testing.T) {
	lines := []string{
		"Encoders:",
		" V..... = Video",
		" ------",
		" V....D libx264              libx264 H.264 / AVC (codec h264)",
		" V....D h264_videotoolbox    VideoToolbox H.264 Encoder (codec h264)",
		" A....D aac                  AAC (Advanced Audio Coding)",
		" S..... srt                  SubRip subtitle",
	}
	encoders := ffmpeg.ParseEncoders(lines)
	if len(encoders) != 4 {
		t.Fatalf("expected 4 encoders, got %d: %+v", len(encoders), encoders)
	}
	if encoders[0].Name != "libx264" || encoders[0].Type != ffmpeg.VideoEncoder || encoders[0].HWAccel {
		t.Fatalf("unexpected libx264 entry %+v", encoders[0])
	}
	if !encoders[1].HWAccel {
		t.Fatalf("expected videotoolbox to be hardware accelerated")
	}
	if encoders[2].Type != ffmpeg.AudioEncoder || encoders[3].Type != ffmpeg.SubtitleEncoder {
		t.Fatalf("unexpected types %+v", encoders)
	}
}

func TestHasEncoderTreatsErrorsAsAbsent(t *testing.T) {
	stub := &stubExecutor{err: func([]string) error { return errors.New("boom") }}
	client := ffmpeg.New("ffmpeg", ffmpeg.WithExecutor(stub))
	if client.HasEncoder(context.Background(), "libx264") {
		t.Fatal("expected false when ffmpeg fails")
	}
}

func writeFakeFFmpeg(t *testing.T, opts testsupport.FakeFFmpegOptions) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte(testsupport.FakeFFmpegScript(opts)), 0o755); err != nil {
		t.Fatalf("write fake ffmpeg: %v", err)
	}
	return path
}

func TestCommandExecutorAgainstScript(t *testing.T) {
	binary := writeFakeFFmpeg(t, testsupport.FakeFFmpegOptions{
		ProbeDuration: "00:00:05.00",
		Encoders:      []string{"h264_nvenc"},
	})
	client := ffmpeg.New(binary)
	ctx := context.Background()

	version, err := client.Version(ctx)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(version, "ffmpeg version") {
		t.Fatalf("unexpected version %q", version)
	}
	if !client.HasEncoder(ctx, "h264_nvenc") {
		t.Fatal("expected h264_nvenc to be listed")
	}
	if client.HasEncoder(ctx, "h264_videotoolbox") {
		t.Fatal("did not expect h264_videotoolbox")
	}
	seconds, ok, err := client.ProbeTrack(ctx, "/music/01 intro.mp3")
	if err != nil || !ok || seconds != 5 {
		t.Fatalf("expected 5s probe, got %v ok=%v err=%v", seconds, ok, err)
	}
}

func TestCommandExecutorExitError(t *testing.T) {
	binary := writeFakeFFmpeg(t, testsupport.FakeFFmpegOptions{FailEncode: true})
	var lines []string
	err := ffmpeg.DefaultExecutor().Run(context.Background(), binary, []string{"-f", "concat", "out.mp4"}, func(line string) {
		lines = append(lines, line)
	})
	var exitErr *ffmpeg.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if exitErr.Code != 1 {
		t.Fatalf("expected exit code 1, got %d", exitErr.Code)
	}
	if exitErr.LastLine() != "Conversion failed!" {
		t.Fatalf("unexpected last line %q", exitErr.LastLine())
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 forwarded lines, got %q", lines)
	}
}
