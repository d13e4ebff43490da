//go:build unix

package fileutil

import (
	"errors"

	"golang.org/x/sys/unix"
)

// isLocked reports whether err means a file is busy rather than missing or
// forbidden.
func isLocked(err error) bool {
	return errors.Is(err, unix.EBUSY) || errors.Is(err, unix.ETXTBSY)
}
