package pipeline

import (
	"errors"

	"vidgen/internal/services"
)

// ErrBusy is returned when a run is requested while another is active on
// the same Runner.
var ErrBusy = errors.New("pipeline: a run is already active")

// Error is the typed failure of a run. It matches its classification marker
// (services.ErrEncode and friends) through errors.Is.
type Error struct {
	Kind   services.Kind
	State  State
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Detail
}

func (e *Error) Unwrap() error { return e.Err }

func newError(state State, marker error, operation, detail string, cause error) *Error {
	err := services.Wrap(marker, string(state), operation, detail, cause)
	return &Error{
		Kind:   services.KindOf(err),
		State:  state,
		Detail: detail,
		Err:    err,
	}
}

// KindOf returns the classification of err, unwrapping *Error when present.
func KindOf(err error) services.Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return services.KindOf(err)
}
