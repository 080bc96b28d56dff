package testsupport

import (
	"fmt"
	"strings"
)

// ProbeStderr is ffmpeg's diagnostic output for `ffmpeg -i track.mp3 -f null -`.
const ProbeStderr = `ffmpeg version 6.1.1 Copyright (c) 2000-2023 the FFmpeg developers
Input #0, mp3, from 'track.mp3':
  Metadata:
    title           : Intro
  Duration: 00:03:25.47, start: 0.025057, bitrate: 320 kb/s
  Stream #0:0: Audio: mp3, 44100 Hz, stereo, fltp, 320 kb/s
Output #0, null, to 'pipe:':
size=N/A time=00:03:25.44 bitrate=N/A speed= 812x
`

// EncodeStderr is a trimmed encode log. Progress updates are separated by
// carriage returns as ffmpeg writes them to a terminal.
const EncodeStderr = "Input #0, concat, from 'concat.txt':\n" +
	"  Duration: N/A, start: 0.000000, bitrate: N/A\n" +
	"Input #1, image2, from 'optimized_bg.jpg':\n" +
	"  Duration: 00:00:00.04, start: 0.000000, bitrate: 50000 kb/s\n" +
	"frame=  120 fps= 60 q=28.0 size=     256kB time=00:00:04.00 bitrate= 524.3kbits/s speed=2.0x\r" +
	"frame=  240 fps= 60 q=28.0 size=     512kB time=00:00:08.00 bitrate= 524.3kbits/s speed=2.0x\r" +
	"frame=  300 fps= 60 q=-1.0 Lsize=     640kB time=00:00:10.00 bitrate= 524.3kbits/s speed=2.0x\n" +
	"video:600kB audio:40kB subtitle:0kB other streams:0kB global headers:0kB muxing overhead: 0.1%\n"

// FakeFFmpegOptions controls the behaviour of the shell ffmpeg stand-in.
type FakeFFmpegOptions struct {
	// ProbeDuration is printed as the Duration of every probed track, e.g.
	// "00:00:05.00". Empty prints no duration line.
	ProbeDuration string
	// EncodeTimes are emitted as time= progress values during encoding.
	EncodeTimes []string
	// FailEncode makes the encode invocation exit 1 without output.
	FailEncode bool
	// Encoders lists names reported by -encoders.
	Encoders []string
}

// FakeFFmpegScript renders a POSIX shell script that imitates the ffmpeg
// invocations vidgen makes: -version, -encoders, duration probes and the
// final encode, which writes a small file to the last argument.
func FakeFFmpegScript(opts FakeFFmpegOptions) string {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("case \" $* \" in\n")
	b.WriteString("*\" -version \"*)\n\techo 'ffmpeg version 6.1-test Copyright (c) 2000-2023 the FFmpeg developers'\n\texit 0\n\t;;\n")
	b.WriteString("*\" -encoders \"*)\n\techo 'Encoders:'\n\techo ' ------'\n")
	for _, name := range opts.Encoders {
		fmt.Fprintf(&b, "\techo ' V....D %s            fake encoder'\n", name)
	}
	b.WriteString("\texit 0\n\t;;\n")
	b.WriteString("*\" -f null \"*)\n")
	if opts.ProbeDuration != "" {
		fmt.Fprintf(&b, "\techo '  Duration: %s, start: 0.000000, bitrate: 320 kb/s' >&2\n", opts.ProbeDuration)
	} else {
		b.WriteString("\techo 'Invalid data found when processing input' >&2\n")
	}
	b.WriteString("\texit 0\n\t;;\n")
	b.WriteString("esac\n")
	b.WriteString("for last; do :; done\n")
	b.WriteString("echo \"Input #0, concat, from 'concat.txt':\" >&2\n")
	if opts.FailEncode {
		b.WriteString("echo 'Error while opening encoder for output stream #0:0' >&2\n")
		b.WriteString("echo 'Conversion failed!' >&2\n")
		b.WriteString("exit 1\n")
		return b.String()
	}
	for i, ts := range opts.EncodeTimes {
		fmt.Fprintf(&b, "printf 'frame=%5d fps= 30 q=28.0 size=     256kB time=%s bitrate= 524.3kbits/s speed=2.0x\\r' >&2\n", (i+1)*30, ts)
	}
	b.WriteString("echo 'fake mp4 payload' > \"$last\"\n")
	b.WriteString("exit 0\n")
	return b.String()
}
