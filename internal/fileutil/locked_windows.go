//go:build windows

package fileutil

import (
	"errors"

	"golang.org/x/sys/windows"
)

// isLocked reports whether err is one of the Win32 errors raised while a
// database engine still holds its data or log files open. ERROR_DIR_NOT_EMPTY
// shows up when the engine recreates a file between enumeration and removal.
func isLocked(err error) bool {
	return errors.Is(err, windows.ERROR_SHARING_VIOLATION) ||
		errors.Is(err, windows.ERROR_LOCK_VIOLATION) ||
		errors.Is(err, windows.ERROR_DIR_NOT_EMPTY)
}
