package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/giantswarm/localdbenv/internal/sentinel"
)

// ErrEmptyDst is returned when a destination path is empty.
const ErrEmptyDst = sentinel.Error("destination path must not be empty")

// tempPattern names the staging file created next to the destination.
const tempPattern = ".localdbenv-*.tmp"

// WriteFileAtomic replaces dst with data, creating parent directories as
// needed. Data is staged in a temp file beside dst, synced and renamed over
// it, so a build reading dst sees either the old or the new content. The
// staged file is removed on any failure.
func WriteFileAtomic(dst string, data []byte, mode os.FileMode) (retErr error) {
	if dst == "" {
		return ErrEmptyDst
	}
	if err := EnsureDirForFile(dst); err != nil {
		return fmt.Errorf("prepare destination: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), tempPattern)
	if err != nil {
		return fmt.Errorf("stage %s: %w", dst, err)
	}
	staged := tmp.Name()
	defer func() {
		if retErr != nil {
			_ = tmp.Close()
			_ = os.Remove(staged)
		}
	}()

	if err := tmp.Chmod(mode); err != nil {
		return fmt.Errorf("chmod %s: %w", staged, err)
	}
	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", staged, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", staged, err)
	}
	if err := os.Rename(staged, dst); err != nil {
		return fmt.Errorf("replace %s: %w", dst, err)
	}
	return nil
}
