package pipeline

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"vidgen/internal/encoding"
	"vidgen/internal/fileutil"
	"vidgen/internal/textutil"
)

// ScratchPrefix names per-run scratch directories under the scratch root.
const ScratchPrefix = "videogenerator_"

const (
	manifestName = "concat.txt"
	imageName    = "optimized_bg.jpg"
)

// Manifest renders the ffmpeg concat demuxer list for tracks, one
// `file '<path>'` line each. Paths are made absolute so the list does not
// depend on the scratch directory it is written to.
func Manifest(tracks []string) (string, error) {
	var b strings.Builder
	for _, track := range tracks {
		abs, err := filepath.Abs(track)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", track, err)
		}
		b.WriteString("file ")
		b.WriteString(textutil.EscapeConcatPath(abs))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func writeManifest(path string, tracks []string) error {
	content, err := Manifest(tracks)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, []byte(content), 0o644)
}

// EncodeArgs assembles the full encode command line after the binary name.
func EncodeArgs(manifest, image string, frameRate int, filter string, profile encoding.Profile, output string) []string {
	args := []string{
		"-y", "-hide_banner",
		"-f", "concat", "-safe", "0", "-i", manifest,
		"-loop", "1", "-framerate", strconv.Itoa(frameRate), "-i", image,
		"-shortest",
	}
	if filter != "" {
		args = append(args, "-vf", filter)
	}
	args = append(args, encoding.Args(profile)...)
	return append(args, output)
}
