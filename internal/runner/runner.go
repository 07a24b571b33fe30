package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/specialistvlad/gridtask/internal/ctxlog"
)

// exitNotFound mirrors the shell convention for a missing executable.
const exitNotFound = 127

// Command is a fully described process invocation.
type Command struct {
	// Argv is the program followed by its arguments.
	Argv []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env is the complete process environment. Nil inherits the caller's.
	Env []string
	// SearchPath lists directories consulted for Argv[0] before PATH.
	SearchPath []string
}

// Result is the outcome of a finished process.
type Result struct {
	Argv     []string
	ExitCode int
	Output   []byte
	Duration time.Duration
}

// Passed reports whether the process exited with status zero.
func (r *Result) Passed() bool {
	return r != nil && r.ExitCode == 0
}

// Runner runs a single command to completion.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// Exec is the os/exec backed Runner. Output is written to Stdout and Stderr
// while the process runs and is also captured into Result.Output.
type Exec struct {
	Stdout io.Writer
	Stderr io.Writer
	Banner *Banner
}

// New creates an Exec runner. A nil banner disables command echoing.
func New(stdout, stderr io.Writer, banner *Banner) *Exec {
	return &Exec{Stdout: stdout, Stderr: stderr, Banner: banner}
}

// Run starts the command and blocks until it exits. The returned error is
// non-nil only when the process could not be started at all; a non-zero exit
// status is reported through Result.ExitCode. It never retries.
func (e *Exec) Run(ctx context.Context, c Command) (*Result, error) {
	if len(c.Argv) == 0 {
		return nil, errors.New("runner: empty argv")
	}
	logger := ctxlog.FromContext(ctx).With("argv", c.Argv, "dir", c.Dir)
	e.Banner.Command(c.Argv)

	res := &Result{Argv: c.Argv, ExitCode: -1}

	path, err := resolve(c.Argv[0], c.SearchPath)
	if err != nil {
		logger.Debug("Executable not found.", "error", err)
		res.ExitCode = exitNotFound
		return res, err
	}

	// os/exec copies stdout and stderr on separate goroutines.
	captured := &lockedBuffer{}
	cmd := exec.CommandContext(ctx, path, c.Argv[1:]...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	cmd.Stdout = io.MultiWriter(orDiscard(e.Stdout), captured)
	cmd.Stderr = io.MultiWriter(orDiscard(e.Stderr), captured)

	start := time.Now()
	runErr := cmd.Run()
	res.Duration = time.Since(start)
	res.Output = captured.Bytes()

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
		res.ExitCode = 0
	case errors.As(runErr, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		if errors.Is(runErr, fs.ErrNotExist) {
			res.ExitCode = exitNotFound
		}
		logger.Debug("Command failed to start.", "error", runErr)
		return res, fmt.Errorf("starting %s: %w", c.Argv[0], runErr)
	}

	logger.Debug("Command finished.", "exit_code", res.ExitCode, "duration", res.Duration)
	return res, nil
}

// resolve looks for name in the search path first, then falls back to PATH.
// Names containing a separator are used as given.
func resolve(name string, searchPath []string) (string, error) {
	if filepath.Base(name) != name {
		return name, nil
	}
	for _, dir := range searchPath {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() && info.Mode()&0o111 != 0 {
			return candidate, nil
		}
	}
	return exec.LookPath(name)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Bytes()
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
