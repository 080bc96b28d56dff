package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

// tailLines bounds the stderr kept for error reports.
const tailLines = 20

// Executor abstracts command execution for testability. onLine receives
// stdout and stderr lines, one call at a time.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onLine func(string)) error
}

// DefaultExecutor runs commands with os/exec.
func DefaultExecutor() Executor { return commandExecutor{} }

// ExitError reports a non-zero ffmpeg exit along with the last lines it
// printed.
type ExitError struct {
	Code int
	Tail []string
	Err  error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("ffmpeg exited with code %d", e.Code)
	if last := e.LastLine(); last != "" {
		msg += ": " + last
	}
	return msg
}

func (e *ExitError) Unwrap() error { return e.Err }

// LastLine returns the final non-empty tail line.
func (e *ExitError) LastLine() string {
	for i := len(e.Tail) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(e.Tail[i]); line != "" {
			return line
		}
	}
	return ""
}

// Detail joins the tail for display.
func (e *ExitError) Detail() string {
	return strings.TrimSpace(strings.Join(e.Tail, "\n"))
}

type tail struct {
	lines []string
}

func (t *tail) add(line string) {
	if strings.TrimSpace(line) == "" || IsProgressLine(line) {
		return
	}
	if len(t.lines) == tailLines {
		copy(t.lines, t.lines[1:])
		t.lines = t.lines[:tailLines-1]
	}
	t.lines = append(t.lines, line)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		once    sync.Once
		scanErr error
		last    tail
	)

	forward := func(line string) {
		mu.Lock()
		defer mu.Unlock()
		last.add(line)
		if onLine != nil {
			onLine(line)
		}
	}

	scan := func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		scanner.Split(ScanLines)
		for scanner.Scan() {
			forward(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() {
				scanErr = err
			})
		}
	}

	wg.Add(2)
	go scan(stdout)
	go scan(stderr)
	wg.Wait()

	if scanErr != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return fmt.Errorf("scan output: %w", scanErr)
	}

	if err := cmd.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode(), Tail: last.lines, Err: err}
		}
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}
