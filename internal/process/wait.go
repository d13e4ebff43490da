package process

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/giantswarm/localdbenv/internal/sentinel"
)

// Configuration errors returned by WaitReady.
const (
	ErrIntervalNotPositive = sentinel.Error("interval must be positive")
	ErrTimeoutNotPositive  = sentinel.Error("timeout must be positive")
	ErrNoTarget            = sentinel.Error("wait target must not be empty")
)

// Probe makes one readiness attempt against the target. A nil error means
// ready; any error is retried until the deadline.
type Probe func(ctx context.Context) error

// WaitReadyConfig configures WaitReady.
type WaitReadyConfig struct {
	Interval time.Duration
	Timeout  time.Duration
	// Target names what is awaited in logs and errors, e.g. `instance "ci"`.
	Target string
	Logger *slog.Logger // defaults to slog.Default()
}

// WaitReady probes immediately and then every Interval until probe succeeds,
// Timeout elapses or ctx is canceled. A timeout error wraps the last probe
// failure so callers see why the target never became ready.
func WaitReady(ctx context.Context, cfg WaitReadyConfig, probe Probe) error {
	switch {
	case cfg.Target == "":
		return ErrNoTarget
	case cfg.Interval <= 0:
		return fmt.Errorf("wait for %s: %w", cfg.Target, ErrIntervalNotPositive)
	case cfg.Timeout <= 0:
		return fmt.Errorf("wait for %s: %w", cfg.Target, ErrTimeoutNotPositive)
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	// Conditions run sequentially, so attempts and lastErr need no locking.
	var attempts int
	var lastErr error
	err := wait.PollUntilContextTimeout(ctx, cfg.Interval, cfg.Timeout, true,
		func(pollCtx context.Context) (bool, error) {
			attempts++
			if lastErr = probe(pollCtx); lastErr != nil {
				log.Debug("not ready yet", "target", cfg.Target, "attempt", attempts, "error", lastErr)
				return false, nil
			}
			log.Debug("ready", "target", cfg.Target, "attempts", attempts)
			return true, nil
		})
	if err == nil {
		return nil
	}
	if lastErr != nil {
		return fmt.Errorf("%s not ready after %d attempts: %w (last probe: %w)", cfg.Target, attempts, err, lastErr)
	}
	return fmt.Errorf("%s not ready after %d attempts: %w", cfg.Target, attempts, err)
}
