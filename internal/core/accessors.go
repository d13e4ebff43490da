package core

import (
	"context"
	"errors"

	"github.com/giantswarm/localdbenv/internal/msbuild"
	"github.com/giantswarm/localdbenv/internal/process"
	"github.com/giantswarm/localdbenv/internal/sqlconn"
)

// FileSystem is the filesystem surface the manager needs. fileutil.OS is the
// production implementation.
type FileSystem interface {
	FileExists(path string) bool
	DirExists(path string) bool
	// ReadFile returns the file contents as text.
	ReadFile(path string) (string, error)
	// WriteFile replaces the file with text.
	WriteFile(path, text string) error
	// RemoveDir deletes path recursively. The error wraps fileutil.ErrLocked
	// when a file in the tree is held open by another process.
	RemoveDir(path string) error
}

// ProcessRunner spawns a command, waits for it and returns its exit code.
// A non-zero exit is not an error. process.Runner is the production
// implementation.
type ProcessRunner interface {
	Run(ctx context.Context, path string, args ...string) (int, error)
}

// ProcessTable enumerates and kills OS processes. List filters by process
// name (see process.NameMatches). process.Table is the production
// implementation.
type ProcessTable interface {
	List(ctx context.Context, name string) ([]process.Info, error)
	Kill(ctx context.Context, pid int32) error
}

// Connector opens SQL connections. Open fails when the server is
// unreachable. sqlconn.Connector is the production implementation.
type Connector interface {
	Open(ctx context.Context, connectionString string) (sqlconn.Conn, error)
}

// ProjectBuilder builds and publishes database projects, reporting whether
// the build succeeded. msbuild.Builder is the production implementation.
type ProjectBuilder interface {
	Build(ctx context.Context, req msbuild.Request) (bool, error)
}

// Accessors bundles the collaborators a Manager drives.
type Accessors struct {
	FS        FileSystem
	Runner    ProcessRunner
	Processes ProcessTable
	Connector Connector
	Builder   ProjectBuilder
}

// Validate reports every missing collaborator.
func (a Accessors) Validate() error {
	var errs []error
	if a.FS == nil {
		errs = append(errs, errors.New("file system accessor must not be nil"))
	}
	if a.Runner == nil {
		errs = append(errs, errors.New("process runner must not be nil"))
	}
	if a.Processes == nil {
		errs = append(errs, errors.New("process table must not be nil"))
	}
	if a.Connector == nil {
		errs = append(errs, errors.New("connector must not be nil"))
	}
	if a.Builder == nil {
		errs = append(errs, errors.New("project builder must not be nil"))
	}
	return errors.Join(errs...)
}
