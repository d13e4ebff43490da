package fileutil

import (
	"fmt"
	"os"
)

// profileMode is the permission of files written through OS.WriteFile.
const profileMode os.FileMode = 0o644

// OS is the production filesystem accessor. The zero value is ready to use.
type OS struct{}

// FileExists reports whether path is an existing regular file.
func (OS) FileExists(path string) bool { return FileExists(path) }

// DirExists reports whether path is an existing directory.
func (OS) DirExists(path string) bool { return DirExists(path) }

// ReadFile returns the contents of path as text. A missing file yields an
// error matching os.ErrNotExist.
func (OS) ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path) //nolint:gosec // G304: paths come from manager configuration
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

// WriteFile atomically replaces path with text.
func (OS) WriteFile(path, text string) error {
	return WriteFileAtomic(path, []byte(text), profileMode)
}

// RemoveDir recursively removes path; see the package-level RemoveDir.
func (OS) RemoveDir(path string) error { return RemoveDir(path) }
