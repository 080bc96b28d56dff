package pipeline

import "sync"

// ProgressSink receives the completion fraction of the encode, in [0,1].
type ProgressSink interface {
	Progress(fraction float64)
}

// LogSink receives human-readable status lines, including ffmpeg's own
// progress lines verbatim.
type LogSink interface {
	Line(text string)
}

// ProgressFunc adapts a function to ProgressSink.
type ProgressFunc func(float64)

func (f ProgressFunc) Progress(fraction float64) { f(fraction) }

// LogFunc adapts a function to LogSink.
type LogFunc func(string)

func (f LogFunc) Line(text string) { f(text) }

// Sinks bundles the observers for one run. Nil members discard.
// Both are called from the goroutine executing the run.
type Sinks struct {
	Progress ProgressSink
	Log      LogSink
}

type discard struct{}

func (discard) Progress(float64) {}
func (discard) Line(string) {}

func (s Sinks) normalized() Sinks {
	if s.Progress == nil {
		s.Progress = discard{}
	}
	if s.Log == nil {
		s.Log = discard{}
	}
	return s
}

// progressGate clamps fractions to [0,1] and drops regressions so observers
// only ever see a non-decreasing sequence.
type progressGate struct {
	mu   sync.Mutex
	sink ProgressSink
	last float64
	sent bool
}

func newProgressGate(sink ProgressSink) *progressGate {
	return &progressGate{sink: sink}
}

func (g *progressGate) report(fraction float64) {
	fraction = min(max(fraction, 0), 1)
	g.mu.Lock()
	if g.sent && fraction <= g.last {
		g.mu.Unlock()
		return
	}
	g.last, g.sent = fraction, true
	g.mu.Unlock()
	g.sink.Progress(fraction)
}
