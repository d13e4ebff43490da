package fake

import (
	"context"
	"strings"
	"sync"
)

// Invocation is one recorded Runner.Run call.
type Invocation struct {
	Path string
	Args []string
}

// Verb returns the first argument, or "" when there are none.
func (i Invocation) Verb() string {
	if len(i.Args) == 0 {
		return ""
	}
	return i.Args[0]
}

// String renders the invocation as a command line.
func (i Invocation) String() string {
	return strings.Join(append([]string{i.Path}, i.Args...), " ")
}

// Runner records invocations and returns scripted exit codes keyed by the
// first argument (e.g., "create"). Unlisted verbs exit 0. Output returns
// Stdout for the verb.
type Runner struct {
	mu sync.Mutex

	ExitCodes map[string]int
	Errs      map[string]error
	Stdout    map[string]string

	calls []Invocation
}

// Calls returns every recorded invocation in call order.
func (r *Runner) Calls() []Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Invocation(nil), r.calls...)
}

// Verbs returns the first argument of every invocation in call order.
func (r *Runner) Verbs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	verbs := make([]string, len(r.calls))
	for i, c := range r.calls {
		verbs[i] = c.Verb()
	}
	return verbs
}

func (r *Runner) Run(ctx context.Context, path string, args ...string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inv := Invocation{Path: path, Args: append([]string(nil), args...)}
	r.calls = append(r.calls, inv)
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	if err := r.Errs[inv.Verb()]; err != nil {
		return -1, err
	}
	return r.ExitCodes[inv.Verb()], nil
}

func (r *Runner) Output(ctx context.Context, path string, args ...string) ([]byte, int, error) {
	code, err := r.Run(ctx, path, args...)
	if err != nil {
		return nil, code, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return []byte(r.Stdout[Invocation{Args: args}.Verb()]), code, nil
}
