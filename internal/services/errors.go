package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPrecondition  = errors.New("precondition failed")
	ErrDecode        = errors.New("decode error")
	ErrProbe         = errors.New("probe error")
	ErrEncode        = errors.New("encode error")
	ErrEnvironment   = errors.New("environment error")
	ErrConfiguration = errors.New("configuration error")
)

// Kind is the machine-checkable classification of a pipeline failure.
type Kind string

const (
	KindPrecondition Kind = "precondition"
	KindDecode       Kind = "decode"
	KindProbe        Kind = "probe"
	KindEncode       Kind = "encode"
	KindEnvironment  Kind = "environment"
	KindUnknown      Kind = "unknown"
)

// Fatal reports whether a failure of this kind ends a run. Probe failures
// only degrade fade-out timing.
func (k Kind) Fatal() bool {
	return k != KindProbe
}

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of
// the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		if err != nil {
			return fmt.Errorf("%s: %w", detail, err)
		}
		return errors.New(detail)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// KindOf maps an error produced by Wrap back to its classification.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrEnvironment):
		return KindEnvironment
	case errors.Is(err, ErrPrecondition), errors.Is(err, ErrConfiguration):
		return KindPrecondition
	case errors.Is(err, ErrDecode):
		return KindDecode
	case errors.Is(err, ErrProbe):
		return KindProbe
	case errors.Is(err, ErrEncode):
		return KindEncode
	default:
		return KindUnknown
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
