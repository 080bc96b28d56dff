package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WriteFileAtomic writes data to a temporary sibling of path and renames it
// into place, so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// RemovePaths removes every path (files or directory trees), ignoring ones
// that are already gone. All failures are reported together.
func RemovePaths(paths ...string) error {
	var errs []error
	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		if err := os.RemoveAll(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}

// DirSize returns the total size in bytes of regular files under path. A
// regular file path returns its own size.
func DirSize(path string) (int64, error) {
	var total int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}

// CleanReport summarizes a CleanStale sweep.
type CleanReport struct {
	Removed []string
	Bytes   int64
	Failed  []string
}

// CleanStale removes entries in dir whose names start with prefix and whose
// modification time is older than olderThan. A zero olderThan removes every
// matching entry.
func CleanStale(dir, prefix string, olderThan time.Duration, now time.Time) (CleanReport, error) {
	var report CleanReport
	if strings.TrimSpace(prefix) == "" {
		return report, errors.New("clean stale: prefix required")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return report, fmt.Errorf("read %s: %w", dir, err)
	}
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if olderThan > 0 && now.Sub(info.ModTime()) < olderThan {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		size, _ := DirSize(path)
		if err := os.RemoveAll(path); err != nil {
			report.Failed = append(report.Failed, path)
			continue
		}
		report.Removed = append(report.Removed, path)
		report.Bytes += size
	}
	return report, nil
}
