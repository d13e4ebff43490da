package fake

import (
	"context"
	"sync"

	"github.com/giantswarm/localdbenv/internal/msbuild"
)

// Builder records build requests and returns a scripted result. The zero
// value reports failure; set Succeed for a successful build.
type Builder struct {
	mu sync.Mutex

	Succeed bool
	Err     error

	requests []msbuild.Request
}

// Requests returns every recorded build request, in order.
func (b *Builder) Requests() []msbuild.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]msbuild.Request(nil), b.requests...)
}

func (b *Builder) Build(_ context.Context, req msbuild.Request) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.requests = append(b.requests, req)
	if b.Err != nil {
		return false, b.Err
	}
	return b.Succeed, nil
}
