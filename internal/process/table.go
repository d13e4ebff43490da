package process

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	gops "github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sync/errgroup"
)

// defaultLookupConcurrency bounds concurrent executable-path lookups in List.
const defaultLookupConcurrency = 8

// Info describes one running OS process. Executable is empty when the path
// could not be resolved (typically a process owned by another user).
type Info struct {
	PID        int32
	Name       string
	Executable string
}

// Table enumerates and kills OS processes. The zero value is ready to use.
type Table struct {
	// Concurrency bounds parallel executable lookups; <= 0 uses a default.
	Concurrency int
	// Logger is resolved on every call; nil uses slog.Default().
	Logger func() *slog.Logger
}

// NameMatches reports whether a process name equals want, ignoring case and
// a trailing ".exe" on either side.
func NameMatches(name, want string) bool {
	norm := func(s string) string {
		return strings.TrimSuffix(strings.ToLower(s), ".exe")
	}
	return norm(name) == norm(want)
}

// List returns the processes whose name matches name (see NameMatches), or
// every process when name is empty, with their executable paths resolved.
// Processes that exit while being inspected are skipped.
func (t Table) List(ctx context.Context, name string) ([]Info, error) {
	log := slog.Default()
	if t.Logger != nil {
		if l := t.Logger(); l != nil {
			log = l
		}
	}

	procs, err := gops.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	type candidate struct {
		proc *gops.Process
		name string
	}
	var candidates []candidate
	for _, p := range procs {
		n, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if name != "" && !NameMatches(n, name) {
			continue
		}
		candidates = append(candidates, candidate{proc: p, name: n})
	}

	limit := t.Concurrency
	if limit <= 0 {
		limit = defaultLookupConcurrency
	}

	infos := make([]Info, len(candidates))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, c := range candidates {
		g.Go(func() error {
			exe, err := c.proc.ExeWithContext(gCtx)
			if err != nil {
				log.Debug("resolve process executable", "pid", c.proc.Pid, "name", c.name, "error", err)
				exe = ""
			}
			infos[i] = Info{PID: c.proc.Pid, Name: c.name, Executable: exe}
			return gCtx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("inspect processes: %w", err)
	}
	return infos, nil
}

// Kill forcibly terminates the process with the given pid.
func (t Table) Kill(ctx context.Context, pid int32) error {
	p, err := gops.NewProcessWithContext(ctx, pid)
	if err != nil {
		return fmt.Errorf("find process %d: %w", pid, err)
	}
	if err := p.KillWithContext(ctx); err != nil {
		return fmt.Errorf("kill process %d: %w", pid, err)
	}
	return nil
}
