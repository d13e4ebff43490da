package core

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/giantswarm/localdbenv/internal/fileutil"
)

// fileLockRetryInterval is the interval between consecutive attempts to
// acquire an instance lock.
const fileLockRetryInterval = 50 * time.Millisecond

// lockPath returns the lock file guarding instanceName.
func lockPath(lockDir, instanceName string) string {
	return filepath.Join(lockDir, instanceName+".lock")
}

// acquireInstanceLock takes an exclusive lock on the instance's lock file,
// creating lockDir if needed. Acquisition is retried until it succeeds or ctx
// is done.
func acquireInstanceLock(ctx context.Context, lockDir, instanceName string) (*flock.Flock, error) {
	if err := fileutil.EnsureDir(lockDir); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	path := lockPath(lockDir, instanceName)
	fl := flock.New(path)

	locked, err := fl.TryLockContext(ctx, fileLockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("acquiring instance lock %s: %w", path, err)
	}
	if !locked {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("acquiring instance lock %s: %w", path, ctx.Err())
		}
		return nil, fmt.Errorf("acquiring instance lock %s: lock not acquired", path)
	}
	return fl, nil
}

// releaseInstanceLock unlocks and closes fl. The lock file stays on disk so a
// concurrent holder's lock is never invalidated by its removal.
func releaseInstanceLock(logger *slog.Logger, fl *flock.Flock) {
	if fl != nil {
		if err := fl.Close(); err != nil {
			logger.Debug("failed to release instance lock", "path", fl.Path(), "err", err)
		}
	}
}
