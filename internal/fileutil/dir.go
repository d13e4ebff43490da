package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/giantswarm/localdbenv/internal/sentinel"
)

// ErrLocked is wrapped by RemoveDir when a file under the directory is held
// open by another process. The condition is usually transient: the OS releases
// handles shortly after the owning process exits.
const ErrLocked = sentinel.Error("resource is locked")

// EnsureDir creates a directory and all parent directories if they don't exist.
// Uses mode 0755. Returns nil if directory already exists.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// EnsureDirForFile creates the parent directory of filePath if it does not
// already exist, ensuring the file can be created without a missing-directory error.
func EnsureDirForFile(filePath string) error {
	if err := EnsureDir(filepath.Dir(filePath)); err != nil {
		return fmt.Errorf("ensure dir for %s: %w", filePath, err)
	}
	return nil
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// RemoveDir removes path and everything below it. A missing directory is not
// an error. When removal fails because something under path is in use, the
// returned error wraps ErrLocked.
func RemoveDir(path string) error {
	if path == "" {
		return errors.New("remove directory: path must not be empty")
	}
	err := os.RemoveAll(path)
	if err == nil {
		return nil
	}
	if isLocked(err) {
		return fmt.Errorf("%w: remove %s: %w", ErrLocked, path, err)
	}
	return fmt.Errorf("remove %s: %w", path, err)
}

// BaseDirectory returns the directory containing the running executable,
// resolving symlinks. Publish templates and generated profiles live here.
func BaseDirectory() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
