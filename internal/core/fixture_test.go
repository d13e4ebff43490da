package core

import (
	"context"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/giantswarm/localdbenv/internal/fake"
)

const testInstance = "integration"

// fixture wires a Manager to fakes. By default the executable and instance
// root exist and no server is reachable.
type fixture struct {
	cfg     ManagerConfig
	fs      *fake.FileSystem
	runner  *fake.Runner
	procs   *fake.ProcessTable
	conns   *fake.Connector
	builder *fake.Builder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	root := t.TempDir()
	cfg := validTestConfig()
	cfg.ExecutablePath = filepath.Join(root, "bin", "SqlLocalDB.exe")
	cfg.InstanceRoot = filepath.Join(root, "instances")
	cfg.BaseDir = filepath.Join(root, "base")
	cfg.LockDir = filepath.Join(root, "locks")
	cfg.DeletionRetryDelay = time.Millisecond

	f := &fixture{
		cfg:     cfg,
		fs:      fake.NewFileSystem(),
		runner:  &fake.Runner{},
		procs:   &fake.ProcessTable{},
		conns:   &fake.Connector{Reachable: func(string) bool { return false }},
		builder: &fake.Builder{Succeed: true},
	}
	f.fs.AddFile(cfg.ExecutablePath, "")
	f.fs.AddDir(cfg.InstanceRoot)
	return f
}

func (f *fixture) manager() *Manager {
	return NewManager(f.cfg, Accessors{
		FS:        f.fs,
		Runner:    f.runner,
		Processes: f.procs,
		Connector: f.conns,
		Builder:   f.builder,
	})
}

// reachableAfterCreate makes instance connections succeed once the create
// step has run, and the bootstrap server always reachable.
func (f *fixture) reachableAfterCreate() {
	f.conns.Reachable = func(cs string) bool {
		return cs == f.cfg.BootstrapConnectionString || slices.Contains(f.runner.Verbs(), "create")
	}
}

// made returns a Manager on which Make has succeeded.
func (f *fixture) made(t *testing.T) *Manager {
	t.Helper()

	m := f.manager()
	if err := m.Make(context.Background(), testInstance); err != nil {
		t.Fatalf("Make() error: %v", err)
	}
	return m
}
