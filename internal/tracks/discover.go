package tracks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".ogg":  {},
	".flac": {},
	".aac":  {},
	".m4a":  {},
	".wma":  {},
}

// IsAudio reports whether path has a recognised audio extension.
func IsAudio(path string) bool {
	_, ok := audioExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Discover lists the audio files directly inside dir and returns their
// absolute paths in track order. Hidden files and subdirectories are skipped.
func Discover(dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read audio directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !IsAudio(name) {
			continue
		}
		paths = append(paths, filepath.Join(abs, name))
	}
	return Order(paths), nil
}
