package ffmpeg

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
)

var (
	durationPattern = regexp.MustCompile(`Duration: (\d{2}):(\d{2}):(\d{2})\.(\d{2})`)
	timePattern     = regexp.MustCompile(`time=(\d{2}):(\d{2}):(\d{2})(\.\d+)?`)
)

var progressKeywords = []string{"frame=", "time=", "bitrate=", "speed="}

// minAdoptedDuration filters out still-image inputs, which report a single
// frame duration.
const minAdoptedDuration = 1.0

// ParseDuration extracts the seconds from a "Duration: HH:MM:SS.CC" line.
func ParseDuration(line string) (float64, bool) {
	m := durationPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mi, _ := strconv.Atoi(m[2])
	s, _ := strconv.Atoi(m[3])
	cs, _ := strconv.Atoi(m[4])
	return float64(h*3600+mi*60+s) + float64(cs)/100, true
}

// ParseTime extracts the encoded position from a "time=HH:MM:SS.xx" progress
// line. "time=N/A" and malformed values report false.
func ParseTime(line string) (float64, bool) {
	m := timePattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mi, _ := strconv.Atoi(m[2])
	s, _ := strconv.Atoi(m[3])
	seconds := float64(h*3600 + mi*60 + s)
	if m[4] != "" {
		if frac, err := strconv.ParseFloat("0"+m[4], 64); err == nil {
			seconds += frac
		}
	}
	return seconds, true
}

// IsProgressLine reports whether line is one of ffmpeg's status updates.
func IsProgressLine(line string) bool {
	for _, keyword := range progressKeywords {
		if strings.Contains(line, keyword) {
			return true
		}
	}
	return false
}

// ScanLines is a bufio.SplitFunc that treats \r, \n and \r\n as line ends.
// ffmpeg rewrites its status line with bare carriage returns.
func ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\r' {
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if !atEOF {
				// Need one more byte to tell \r from \r\n.
				return 0, nil, nil
			}
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Tracker converts encode status lines into a completion fraction.
type Tracker struct {
	total   float64
	known   bool
	adopted bool
	last    float64
}

// NewTracker starts tracking against total seconds. When known is false the
// first usable stream duration seen on stderr is adopted instead.
func NewTracker(total float64, known bool) *Tracker {
	return &Tracker{total: total, known: known && total > 0}
}

// Total reports the duration in use and whether one is known.
func (t *Tracker) Total() (float64, bool) {
	return t.total, t.known
}

// Observe feeds one stderr line. It returns the updated fraction and true
// when the line advanced progress. Fractions are clamped to [0,1] and never
// decrease.
func (t *Tracker) Observe(line string) (float64, bool) {
	if !t.known && !t.adopted {
		if d, ok := ParseDuration(line); ok {
			t.adopted = true
			if d >= minAdoptedDuration {
				t.total, t.known = d, true
			}
			return t.last, false
		}
	}
	if !t.known {
		return t.last, false
	}
	pos, ok := ParseTime(line)
	if !ok {
		return t.last, false
	}
	fraction := min(max(pos/t.total, 0), 1)
	if fraction <= t.last {
		return t.last, false
	}
	t.last = fraction
	return fraction, true
}

// Last returns the highest fraction reported so far.
func (t *Tracker) Last() float64 { return t.last }
