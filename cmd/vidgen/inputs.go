package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"vidgen/internal/config"
	"vidgen/internal/tracks"
)

// resolveTracks turns command arguments into an ordered track list. A single
// directory argument is scanned for audio files; otherwise every argument is
// taken as a file.
func resolveTracks(args []string) ([]string, string, error) {
	if len(args) == 0 {
		return nil, "", errors.New("no audio directory or files given")
	}
	if len(args) == 1 {
		path, err := config.ExpandPath(args[0])
		if err != nil {
			return nil, "", err
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, "", fmt.Errorf("inspect %q: %w", path, err)
		}
		if info.IsDir() {
			found, err := tracks.Discover(path)
			if err != nil {
				return nil, "", err
			}
			if len(found) == 0 {
				return nil, "", fmt.Errorf("no audio files found in %s", path)
			}
			return found, path, nil
		}
	}

	files := make([]string, 0, len(args))
	for _, arg := range args {
		path, err := config.ExpandPath(arg)
		if err != nil {
			return nil, "", err
		}
		files = append(files, path)
	}
	return tracks.Order(files), filepath.Dir(files[0]), nil
}
