package fake

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

// FileSystem is an in-memory file system keyed by path.
//
// RemoveDirErrs scripts RemoveDir failures: call n returns RemoveDirErrs[n]
// while n is in range, then succeeds. RemoveDirErr, when set, is returned by
// every call instead.
type FileSystem struct {
	mu    sync.Mutex
	files map[string]string
	dirs  map[string]bool

	RemoveDirErrs []error
	RemoveDirErr  error

	removeCalls int
	writes      []string
}

// NewFileSystem returns an empty FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{files: map[string]string{}, dirs: map[string]bool{}}
}

// AddFile stores a file.
func (f *FileSystem) AddFile(path, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = text
}

// AddDir records a directory.
func (f *FileSystem) AddDir(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirs[path] = true
}

// File returns a stored file and whether it exists.
func (f *FileSystem) File(path string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	text, ok := f.files[path]
	return text, ok
}

// RemoveDirCalls returns how many times RemoveDir was called.
func (f *FileSystem) RemoveDirCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.removeCalls
}

// Writes returns the paths passed to WriteFile, in call order.
func (f *FileSystem) Writes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.writes...)
}

func (f *FileSystem) FileExists(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[path]
	return ok
}

func (f *FileSystem) DirExists(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirs[path]
}

func (f *FileSystem) ReadFile(path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	text, ok := f.files[path]
	if !ok {
		return "", fmt.Errorf("read %s: %w", path, fs.ErrNotExist)
	}
	return text, nil
}

func (f *FileSystem) WriteFile(path, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = text
	f.writes = append(f.writes, path)
	return nil
}

// RemoveDir deletes path and everything recorded beneath it unless a
// scripted error applies.
func (f *FileSystem) RemoveDir(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := f.removeCalls
	f.removeCalls++
	if f.RemoveDirErr != nil {
		return f.RemoveDirErr
	}
	if n < len(f.RemoveDirErrs) && f.RemoveDirErrs[n] != nil {
		return f.RemoveDirErrs[n]
	}

	sep := string(filepath.Separator)
	prefix := strings.TrimSuffix(path, sep) + sep
	for d := range f.dirs {
		if d == path || strings.HasPrefix(d, prefix) {
			delete(f.dirs, d)
		}
	}
	for p := range f.files {
		if strings.HasPrefix(p, prefix) {
			delete(f.files, p)
		}
	}
	return nil
}
