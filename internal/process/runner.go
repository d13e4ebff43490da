package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/giantswarm/localdbenv/internal/fileutil"
	"github.com/giantswarm/localdbenv/internal/sentinel"
)

// ErrEmptyPath is returned by Run when the executable path is empty.
const ErrEmptyPath = sentinel.Error("executable path must not be empty")

// outputTailBytes caps how much captured output is attached to the warning
// logged for a non-zero exit.
const outputTailBytes = 2048

// waitDelay bounds how long Wait keeps copying output after the process has
// been killed on cancellation, in case a grandchild still holds the pipes.
const waitDelay = 2 * time.Second

// Runner spawns external commands and reports their exit codes. Output is
// kept for diagnostics only; callers decide success from the exit code.
//
// The zero value captures output in memory and logs through slog.Default().
type Runner struct {
	// LogDir, when set, receives one stdout and one stderr file per
	// invocation name (e.g., "sqllocaldb-create-stderr.log").
	LogDir string
	// Logger is resolved on every call so a logger swapped after
	// construction is honored.
	Logger func() *slog.Logger
}

// Run starts path with args, waits for it to exit and returns its exit code.
// A non-zero exit is not an error; err is reserved for failures to start or
// wait on the process, including cancellation of ctx.
func (r Runner) Run(ctx context.Context, path string, args ...string) (int, error) {
	return r.run(ctx, nil, path, args)
}

// Output is Run that also returns everything the process wrote to stdout.
// Stdout still reaches the per-invocation log file when LogDir is set.
func (r Runner) Output(ctx context.Context, path string, args ...string) ([]byte, int, error) {
	var stdout bytes.Buffer
	code, err := r.run(ctx, &stdout, path, args)
	return stdout.Bytes(), code, err
}

func (r Runner) run(ctx context.Context, stdout *bytes.Buffer, path string, args []string) (int, error) {
	if path == "" {
		return -1, ErrEmptyPath
	}
	log := r.logger()

	name := InvocationName(path, args)
	cmd := exec.CommandContext(ctx, path, args...)
	configureSysProcAttr(cmd)
	cmd.WaitDelay = waitDelay

	var output bytes.Buffer
	if r.LogDir != "" {
		if err := fileutil.EnsureDir(r.LogDir); err != nil {
			return -1, fmt.Errorf("prepare %s logs: %w", name, err)
		}
		logs, err := attachLogs(cmd, r.LogDir, name)
		if err != nil {
			return -1, err
		}
		defer logs.Close()
	} else {
		cmd.Stdout = &output
		cmd.Stderr = &output
	}
	if stdout != nil {
		cmd.Stdout = io.MultiWriter(cmd.Stdout, stdout)
	}
	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("start %s process: %w", name, err)
	}

	log.Debug("process started", "process", name, "pid", cmd.Process.Pid, "args", args)

	err := cmd.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, fmt.Errorf("%s: %w", name, ctxErr)
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return -1, fmt.Errorf("wait for %s: %w", name, err)
	}

	code := cmd.ProcessState.ExitCode()
	if code != 0 {
		attrs := []any{"process", name, "exit_code", code}
		if r.LogDir != "" {
			attrs = append(attrs, "log_dir", r.LogDir)
		} else {
			attrs = append(attrs, "output", tail(output.Bytes(), outputTailBytes))
		}
		log.Warn("process exited with non-zero code", attrs...)
	} else {
		log.Debug("process exited", "process", name)
	}
	return code, nil
}

func (r Runner) logger() *slog.Logger {
	if r.Logger != nil {
		if l := r.Logger(); l != nil {
			return l
		}
	}
	return slog.Default()
}

// InvocationName derives a log-friendly name from the executable and its
// first argument: ("SqlLocalDB.exe", ["create", "x"]) -> "sqllocaldb-create".
func InvocationName(path string, args []string) string {
	base := strings.ToLower(filepath.Base(path))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if len(args) == 0 {
		return base
	}
	verb := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, args[0])
	if verb == "" {
		return base
	}
	return base + "-" + verb
}

// tail returns at most n trailing bytes of b as a trimmed string. The cut
// moves forward to a rune boundary.
func tail(b []byte, n int) string {
	if len(b) > n {
		b = b[len(b)-n:]
		for len(b) > 0 && !utf8.RuneStart(b[0]) {
			b = b[1:]
		}
	}
	return strings.TrimSpace(string(b))
}
