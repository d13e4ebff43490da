package fake

import (
	"context"
	"sync"

	"github.com/giantswarm/localdbenv/internal/process"
)

// ProcessTable serves a fixed process list and records kills. Killed
// processes disappear from later List calls.
type ProcessTable struct {
	mu sync.Mutex

	Procs    []process.Info
	ListErr  error
	KillErrs map[int32]error

	listNames []string
	killed    []int32
}

// Killed returns the pids passed to successful Kill calls, in order.
func (t *ProcessTable) Killed() []int32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]int32(nil), t.killed...)
}

// ListNames returns the name filters passed to List, in order.
func (t *ProcessTable) ListNames() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.listNames...)
}

func (t *ProcessTable) List(_ context.Context, name string) ([]process.Info, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.listNames = append(t.listNames, name)
	if t.ListErr != nil {
		return nil, t.ListErr
	}
	var out []process.Info
	for _, p := range t.Procs {
		if name == "" || process.NameMatches(p.Name, name) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (t *ProcessTable) Kill(_ context.Context, pid int32) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.KillErrs[pid]; err != nil {
		return err
	}
	t.killed = append(t.killed, pid)
	kept := t.Procs[:0]
	for _, p := range t.Procs {
		if p.PID != pid {
			kept = append(kept, p)
		}
	}
	t.Procs = kept
	return nil
}
