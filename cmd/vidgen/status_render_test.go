package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"vidgen/internal/preflight"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusError, "not found", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "FFmpeg:", "[ERROR] not found")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusOK, "ready", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestCheckKind(t *testing.T) {
	tests := []struct {
		result preflight.Result
		want   statusKind
	}{
		{preflight.Result{Passed: true}, statusOK},
		{preflight.Result{Optional: true}, statusWarn},
		{preflight.Result{}, statusError},
	}
	for _, tt := range tests {
		if got := checkKind(tt.result); got != tt.want {
			t.Fatalf("checkKind(%+v) = %v, want %v", tt.result, got, tt.want)
		}
	}
}

func TestIsTerminalNonFile(t *testing.T) {
	if isTerminal(io.Discard) {
		t.Fatal("expected non-file writer to report no terminal")
	}
}

func TestRenderTableFooterAndAlignment(t *testing.T) {
	out := renderTable(tableSpec{
		Headers: []string{"#", "File"},
		Rows:    [][]string{{"1", "intro.mp3"}, {"2"}},
		Footer:  []string{"", "2 tracks"},
		Aligns:  []columnAlignment{alignRight},
	})
	for _, fragment := range []string{"intro.mp3", "2 tracks", "╭"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in table:\n%s", fragment, out)
		}
	}
	if renderTable(tableSpec{}) != "" {
		t.Fatal("expected empty output without headers")
	}
}
