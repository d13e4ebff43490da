package process

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"
)

func requireShell(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not found in PATH")
	}
	return sh
}

func TestRunner_ExitCodes(t *testing.T) {
	t.Parallel()
	sh := requireShell(t)

	tests := map[string]struct {
		script string
		want   int
	}{
		"success":          {script: "exit 0", want: 0},
		"failure":          {script: "exit 1", want: 1},
		"custom exit code": {script: "echo boom >&2; exit 7", want: 7},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			code, err := Runner{}.Run(context.Background(), sh, "-c", tc.script)
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if code != tc.want {
				t.Errorf("Run() exit code = %d, want %d", code, tc.want)
			}
		})
	}
}

func TestRunner_WritesLogFiles(t *testing.T) {
	t.Parallel()
	sh := requireShell(t)

	dir := filepath.Join(t.TempDir(), "logs")
	r := Runner{LogDir: dir}

	code, err := r.Run(context.Background(), sh, "-c", "echo out; echo err >&2")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if code != 0 {
		t.Fatalf("Run() exit code = %d, want 0", code)
	}

	outPath, errPath := logPaths(dir, InvocationName(sh, []string{"-c"}))
	stdout, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read stdout log: %v", err)
	}
	if strings.TrimSpace(string(stdout)) != "out" {
		t.Errorf("stdout log = %q, want %q", stdout, "out")
	}
	stderr, err := os.ReadFile(errPath)
	if err != nil {
		t.Fatalf("read stderr log: %v", err)
	}
	if strings.TrimSpace(string(stderr)) != "err" {
		t.Errorf("stderr log = %q, want %q", stderr, "err")
	}
}

func TestRunner_EmptyPath(t *testing.T) {
	t.Parallel()

	_, err := Runner{}.Run(context.Background(), "")
	if !errors.Is(err, ErrEmptyPath) {
		t.Fatalf("Run() error = %v, want %v", err, ErrEmptyPath)
	}
}

func TestRunner_MissingExecutable(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "does-not-exist")
	code, err := Runner{}.Run(context.Background(), missing, "create", "x")
	if err == nil {
		t.Fatal("expected error for missing executable, got nil")
	}
	if code != -1 {
		t.Errorf("Run() exit code = %d, want -1", code)
	}
}

func TestRunner_ContextCanceled(t *testing.T) {
	t.Parallel()
	sh := requireShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Runner{}.Run(ctx, sh, "-c", "exec sleep 5")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run() error = %v, want %v", err, context.DeadlineExceeded)
	}
}

func TestInvocationName(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path string
		args []string
		want string
	}{
		"exe with verb":     {path: "SqlLocalDB.exe", args: []string{"create", "x", "-s"}, want: "sqllocaldb-create"},
		"absolute path":     {path: "/usr/bin/msbuild", args: []string{"/work/db.sqlproj"}, want: "msbuild-workdbsqlproj"},
		"no args":           {path: "SqlLocalDB.exe", want: "sqllocaldb"},
		"flag-only verb":    {path: "sh", args: []string{"-c"}, want: "sh-c"},
		"punctuation verb":  {path: "tool", args: []string{"--"}, want: "tool"},
		"uppercase in verb": {path: "tool", args: []string{"STOP"}, want: "tool-stop"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := InvocationName(tc.path, tc.args); got != tc.want {
				t.Errorf("InvocationName(%q, %v) = %q, want %q", tc.path, tc.args, got, tc.want)
			}
		})
	}
}

func TestTail(t *testing.T) {
	t.Parallel()

	if got := tail([]byte("  abcdef \n"), 4); got != "ef" {
		t.Errorf("tail() = %q, want %q", got, "ef")
	}
	if got := tail([]byte("short\n"), 100); got != "short" {
		t.Errorf("tail() = %q, want %q", got, "short")
	}
}

func TestTail_RuneBoundary(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in   string
		n    int
		want string
	}{
		"cut inside two-byte rune":   {in: "xéz", n: 2, want: "z"},
		"cut on rune start":          {in: "xéz", n: 3, want: "éz"},
		"cut inside three-byte rune": {in: "a€b", n: 3, want: "b"},
		"only continuation bytes":    {in: "aé", n: 1, want: ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := tail([]byte(tc.in), tc.n)
			if got != tc.want {
				t.Errorf("tail(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("tail(%q, %d) = %q is not valid UTF-8", tc.in, tc.n, got)
			}
		})
	}
}

func TestRunner_LoggerResolvedPerRun(t *testing.T) {
	t.Parallel()
	sh := requireShell(t)

	var current atomic.Pointer[slog.Logger]
	current.Store(slog.New(slog.DiscardHandler))
	r := Runner{Logger: current.Load}

	var buf bytes.Buffer
	current.Store(slog.New(slog.NewTextHandler(&buf, nil)))

	if _, err := r.Run(context.Background(), sh, "-c", "exit 3"); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(buf.String(), "process exited with non-zero code") {
		t.Errorf("swapped logger got %q, want the non-zero exit warning", buf.String())
	}
}

func TestRunner_Output(t *testing.T) {
	t.Parallel()
	sh := requireShell(t)

	tests := map[string]struct {
		logDir bool
	}{
		"in memory": {},
		"log dir":   {logDir: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var r Runner
			if tc.logDir {
				r.LogDir = t.TempDir()
			}
			out, code, err := r.Output(context.Background(), sh, "-c", "echo 'Instance pipe name: np:x'; echo noise >&2; exit 2")
			if err != nil {
				t.Fatalf("Output() error: %v", err)
			}
			if code != 2 {
				t.Errorf("Output() exit code = %d, want 2", code)
			}
			if got := strings.TrimSpace(string(out)); got != "Instance pipe name: np:x" {
				t.Errorf("Output() stdout = %q, want only the stdout line", got)
			}
			if tc.logDir {
				outPath, _ := logPaths(r.LogDir, InvocationName(sh, []string{"-c"}))
				logged, err := os.ReadFile(outPath)
				if err != nil {
					t.Fatalf("read stdout log: %v", err)
				}
				if !bytes.Equal(logged, out) {
					t.Errorf("stdout log = %q, want %q", logged, out)
				}
			}
		})
	}
}
