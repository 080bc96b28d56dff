package services_test

import (
	"errors"
	"strings"
	"testing"

	"vidgen/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrEncode, "encoding", "ffmpeg", "exited 1", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrEncode) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"encoding", "ffmpeg", "exited 1"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutMarker(t *testing.T) {
	base := errors.New("io")
	err := services.Wrap(nil, "", "", "", base)
	if !errors.Is(err, base) {
		t.Fatalf("expected base error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "pipeline failure") {
		t.Fatalf("expected default detail, got %q", err.Error())
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want services.Kind
	}{
		{"nil", nil, services.KindUnknown},
		{"precondition", services.Wrap(services.ErrPrecondition, "validating", "", "no tracks", nil), services.KindPrecondition},
		{"configuration", services.Wrap(services.ErrConfiguration, "config", "", "bad", nil), services.KindPrecondition},
		{"decode", services.Wrap(services.ErrDecode, "compositing", "open", "", errors.New("x")), services.KindDecode},
		{"probe", services.Wrap(services.ErrProbe, "probing", "", "", nil), services.KindProbe},
		{"encode", services.Wrap(services.ErrEncode, "encoding", "", "", nil), services.KindEncode},
		{"environment", services.Wrap(services.ErrEnvironment, "validating", "ffmpeg", "missing", nil), services.KindEnvironment},
		{"plain", errors.New("other"), services.KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := services.KindOf(tc.err); got != tc.want {
				t.Fatalf("KindOf = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestProbeKindIsNotFatal(t *testing.T) {
	if services.KindProbe.Fatal() {
		t.Fatal("expected probe failures to be non-fatal")
	}
	if !services.KindEncode.Fatal() {
		t.Fatal("expected encode failures to be fatal")
	}
}
