package ffmpeg_test

import (
	"bufio"
	"math"
	"strings"
	"testing"

	"vidgen/internal/media/ffmpeg"
	"vidgen/internal/testsupport"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		line string
		want float64
		ok   bool
	}{
		{"  Duration: 00:03:25.47, start: 0.025057, bitrate: 320 kb/s", 205.47, true},
		{"  Duration: 01:00:00.00, start: 0", 3600, true},
		{"  Duration: N/A, start: 0.000000, bitrate: N/A", 0, false},
		{"Duration: 0:1:2.3", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ffmpeg.ParseDuration(tt.line)
		if ok != tt.ok || math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("ParseDuration(%q) = %v, %v; want %v, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		line string
		want float64
		ok   bool
	}{
		{"frame=  120 fps= 60 time=00:00:04.00 bitrate= 524.3kbits/s", 4, true},
		{"size=N/A time=00:03:25.44 bitrate=N/A speed= 812x", 205.44, true},
		{"frame= 10 time=01:02:03 bitrate=1k", 3723, true},
		{"size=N/A time=N/A bitrate=N/A", 0, false},
		{"time=garbage", 0, false},
	}
	for _, tt := range tests {
		got, ok := ffmpeg.ParseTime(tt.line)
		if ok != tt.ok || math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("ParseTime(%q) = %v, %v; want %v, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsProgressLine(t *testing.T) {
	if !ffmpeg.IsProgressLine("frame=  120 fps= 60") {
		t.Fatal("expected frame= line to count as progress")
	}
	if !ffmpeg.IsProgressLine("size=N/A speed=1.2x") {
		t.Fatal("expected speed= line to count as progress")
	}
	if ffmpeg.IsProgressLine("Stream #0:0: Audio: mp3, 44100 Hz") {
		t.Fatal("stream description is not progress")
	}
}

func TestScanLinesSplitsCarriageReturns(t *testing.T) {
	scanner := bufio.NewScanner(strings.NewReader(testsupport.EncodeStderr))
	scanner.Split(ffmpeg.ScanLines)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines, got %d: %q", len(lines), lines)
	}
	if !strings.Contains(lines[5], "time=00:00:08.00") {
		t.Fatalf("unexpected line 5: %q", lines[5])
	}
	for _, line := range lines {
		if strings.ContainsAny(line, "\r\n") {
			t.Fatalf("line retains separator: %q", line)
		}
	}
}

func TestScanLinesCRLF(t *testing.T) {
	scanner := bufio.NewScanner(strings.NewReader("a\r\nb\rc\n\nd"))
	scanner.Split(ffmpeg.ScanLines)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	want := []string{"a", "b", "c", "", "d"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %q, got %q", want, lines)
	}
}

func TestTrackerKnownTotal(t *testing.T) {
	tracker := ffmpeg.NewTracker(10, true)
	var got []float64
	for _, line := range []string{
		"frame= 1 time=00:00:04.00 bitrate=1k",
		"frame= 2 time=00:00:02.00 bitrate=1k",
		"frame= 3 time=00:00:08.00 bitrate=1k",
		"frame= 4 time=00:00:30.00 bitrate=1k",
		"frame= 5 time=00:00:31.00 bitrate=1k",
	} {
		if fraction, ok := tracker.Observe(line); ok {
			got = append(got, fraction)
		}
	}
	want := []float64{0.4, 0.8, 1}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestTrackerAdoptsStreamDuration(t *testing.T) {
	tracker := ffmpeg.NewTracker(0, false)
	tracker.Observe("  Duration: 00:00:20.00, start: 0.000000, bitrate: 320 kb/s")
	if total, known := tracker.Total(); !known || total != 20 {
		t.Fatalf("expected adopted total 20, got %v known=%v", total, known)
	}
	if fraction, ok := tracker.Observe("time=00:00:05.00"); !ok || fraction != 0.25 {
		t.Fatalf("expected 0.25, got %v ok=%v", fraction, ok)
	}
}

func TestTrackerIgnoresStillImageDuration(t *testing.T) {
	tracker := ffmpeg.NewTracker(0, false)
	scanner := bufio.NewScanner(strings.NewReader(testsupport.EncodeStderr))
	scanner.Split(ffmpeg.ScanLines)
	for scanner.Scan() {
		if _, ok := tracker.Observe(scanner.Text()); ok {
			t.Fatalf("no progress expected without a usable total: %q", scanner.Text())
		}
	}
	if _, known := tracker.Total(); known {
		t.Fatal("single-frame image duration must not be adopted")
	}
}
