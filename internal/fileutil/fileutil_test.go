package fileutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "concat.txt")

	if err := WriteFileAtomic(path, []byte("first"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(path, []byte("second"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Fatalf("content mismatch: got %q", got)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("unexpected mode %v", info.Mode().Perm())
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected temp file cleanup, found %d entries", len(entries))
	}
}

func TestRemovePathsIgnoresMissing(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.jpg")
	sub := filepath.Join(dir, "scratch")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(sub, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := RemovePaths(file, sub, filepath.Join(dir, "missing"), ""); err != nil {
		t.Fatalf("RemovePaths returned error: %v", err)
	}
	for _, p := range []string{file, sub} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Fatalf("expected %s removed, err=%v", p, err)
		}
	}
}

func TestDirSize(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a"), make([]byte, 10), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "b"), make([]byte, 5), 0o644); err != nil {
		t.Fatal(err)
	}
	size, err := DirSize(dir)
	if err != nil {
		t.Fatal(err)
	}
	if size != 15 {
		t.Fatalf("DirSize = %d, want 15", size)
	}
}

func TestCleanStale(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	old := filepath.Join(dir, "videogenerator_old")
	fresh := filepath.Join(dir, "videogenerator_fresh")
	other := filepath.Join(dir, "unrelated")
	for _, p := range []string{old, fresh, other} {
		if err := os.MkdirAll(p, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(p, "concat.txt"), []byte("1234"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	past := now.Add(-2 * time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	report, err := CleanStale(dir, "videogenerator_", time.Hour, now)
	if err != nil {
		t.Fatalf("CleanStale returned error: %v", err)
	}
	if len(report.Removed) != 1 || report.Removed[0] != old {
		t.Fatalf("unexpected removals %v", report.Removed)
	}
	if report.Bytes != 4 {
		t.Fatalf("unexpected bytes %d", report.Bytes)
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Fatalf("expected fresh entry kept: %v", err)
	}

	report, err = CleanStale(dir, "videogenerator_", 0, now)
	if err != nil {
		t.Fatalf("CleanStale returned error: %v", err)
	}
	if len(report.Removed) != 1 {
		t.Fatalf("expected fresh entry removed with zero age, got %v", report.Removed)
	}
	if _, err := os.Stat(other); err != nil {
		t.Fatalf("expected unrelated entry kept: %v", err)
	}
}

func TestCleanStaleRequiresPrefix(t *testing.T) {
	if _, err := CleanStale(t.TempDir(), " ", 0, time.Now()); err == nil {
		t.Fatal("expected error without prefix")
	}
}
