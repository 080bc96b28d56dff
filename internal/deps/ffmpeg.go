package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveFFmpeg reports the ffmpeg binary vidgen will execute.
//
// A configured value wins outright: an explicit path must exist and be
// executable, and a bare name is resolved through PATH. Without one the
// lookup prefers an ffmpeg that sits next to the vidgen executable, then the
// application bundle layout (../Resources/ffmpeg), then PATH.
func ResolveFFmpeg(configured string) Status {
	exe, err := os.Executable()
	if err != nil {
		exe = ""
	}
	return resolveFFmpeg(configured, exe)
}

func resolveFFmpeg(configured, executable string) Status {
	result := Status{
		Name:        "FFmpeg",
		Description: "Required for duration probes and encoding",
	}

	if configured = strings.TrimSpace(configured); configured != "" {
		result.Command = configured
		if !strings.ContainsAny(configured, `/\`) {
			if resolved, err := exec.LookPath(configured); err == nil {
				result.Command = resolved
				result.Source = SourceConfigured
				result.Available = true
				return result
			}
			result.Detail = fmt.Sprintf("binary %q not found", configured)
			return result
		}
		info, err := os.Stat(configured)
		switch {
		case err != nil:
			result.Detail = fmt.Sprintf("configured ffmpeg %q not found", configured)
		case !isExecutable(info):
			result.Detail = fmt.Sprintf("configured ffmpeg %q is not executable", configured)
		default:
			result.Source = SourceConfigured
			result.Available = true
		}
		return result
	}

	for _, candidate := range bundledCandidates(executable) {
		if info, err := os.Stat(candidate); err == nil && isExecutable(info) {
			result.Command = candidate
			result.Source = SourceBundled
			result.Available = true
			return result
		}
	}

	ffmpegName := executableName("ffmpeg")
	if ffmpegPath, err := exec.LookPath(ffmpegName); err == nil {
		result.Command = ffmpegPath
		result.Source = SourcePath
		result.Available = true
		return result
	}

	result.Command = ffmpegName
	result.Detail = fmt.Sprintf("binary %q not found", ffmpegName)
	return result
}

func bundledCandidates(executable string) []string {
	if strings.TrimSpace(executable) == "" {
		return nil
	}
	if resolved, err := filepath.EvalSymlinks(executable); err == nil {
		executable = resolved
	}
	dir := filepath.Dir(executable)
	name := executableName("ffmpeg")
	return []string{
		filepath.Join(dir, name),
		filepath.Join(dir, "..", "Resources", name),
	}
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}

func isExecutable(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
