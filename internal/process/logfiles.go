package process

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// toolLogs holds the per-invocation output files of one tool run. A rerun of
// the same invocation truncates them, so the files always describe the most
// recent attempt (e.g., "sqllocaldb-create-stderr.log").
type toolLogs struct {
	stdout *os.File
	stderr *os.File
}

// logPaths returns the stdout and stderr file paths for invocation name.
func logPaths(dir, name string) (stdout, stderr string) {
	return filepath.Join(dir, name+"-stdout.log"), filepath.Join(dir, name+"-stderr.log")
}

// attachLogs opens the log files for name in dir and points cmd's output at
// them. The caller closes the returned toolLogs after cmd exits.
func attachLogs(cmd *exec.Cmd, dir, name string) (*toolLogs, error) {
	outPath, errPath := logPaths(dir, name)

	stdout, err := os.Create(outPath) //nolint:gosec // G304: dir is configured, name is derived from the tool
	if err != nil {
		return nil, fmt.Errorf("create %s stdout log: %w", name, err)
	}
	stderr, err := os.Create(errPath) //nolint:gosec // G304: as above
	if err != nil {
		_ = stdout.Close()
		return nil, fmt.Errorf("create %s stderr log: %w", name, err)
	}

	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return &toolLogs{stdout: stdout, stderr: stderr}, nil
}

// Close closes both files. It is safe to call more than once.
func (l *toolLogs) Close() error {
	var errs []error
	for _, f := range []**os.File{&l.stdout, &l.stderr} {
		if *f != nil {
			errs = append(errs, (*f).Close())
			*f = nil
		}
	}
	return errors.Join(errs...)
}
