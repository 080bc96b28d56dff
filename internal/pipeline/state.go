package pipeline

// State is a step of a single pipeline run. A run only moves forward.
type State string

const (
	StateIdle             State = "idle"
	StateValidating       State = "validating"
	StateCompositingImage State = "compositing_image"
	StateProbingDuration  State = "probing_duration"
	StateEncoding         State = "encoding"
	StateFinalizing       State = "finalizing"
	StateSucceeded        State = "succeeded"
	StateFailed           State = "failed"
)

var stateOrder = map[State]int{
	StateIdle:             0,
	StateValidating:       1,
	StateCompositingImage: 2,
	StateProbingDuration:  3,
	StateEncoding:         4,
	StateFinalizing:       5,
	StateSucceeded:        6,
	StateFailed:           6,
}

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

func (s State) String() string { return string(s) }

// Label is the human-facing name of s.
func (s State) Label() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateValidating:
		return "Validating"
	case StateCompositingImage:
		return "Compositing image"
	case StateProbingDuration:
		return "Probing duration"
	case StateEncoding:
		return "Encoding"
	case StateFinalizing:
		return "Finalizing"
	case StateSucceeded:
		return "Succeeded"
	case StateFailed:
		return "Failed"
	default:
		return string(s)
	}
}

// follows reports whether next is a legal successor of s.
func (s State) follows(next State) bool {
	if s.Terminal() {
		return false
	}
	if next == StateFailed {
		return true
	}
	return stateOrder[next] > stateOrder[s]
}
