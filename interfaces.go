package localdbenv

import (
	"context"

	"github.com/giantswarm/localdbenv/internal/core"
	"github.com/giantswarm/localdbenv/internal/msbuild"
	"github.com/giantswarm/localdbenv/internal/process"
	"github.com/giantswarm/localdbenv/internal/sqlconn"
)

// Manager manages the lifecycle of one LocalDB instance.
//
// Callers must follow this ordering:
//
//	NewManager → Make → AddFakeLinkedServer / BuildAndPublishProject / DatabaseExists
//
// A Manager is not safe for concurrent use. Make takes a cross-process lock
// on the instance name, so separate processes making the same instance are
// serialized.
type Manager interface {
	// Make deletes any existing instance called instanceName, together with
	// its databases and on-disk state, and creates a fresh started instance.
	//
	// Preconditions are checked in order before anything is touched: the
	// executable must exist (ErrExecutableNotFound), the instance root must
	// exist (ErrInstanceRootNotFound), and instanceName must not be blank
	// (ErrBlankInstanceName). A failed Make leaves the manager unmade; call
	// Make again rather than resuming.
	Make(ctx context.Context, instanceName string) error

	// AddFakeLinkedServer registers a linked server that points nowhere so
	// procedures referencing it compile. The registration is made on the
	// bootstrap server (see WithBootstrapConnectionString), not on the made
	// instance. Returns ErrNotMade before a successful Make.
	AddFakeLinkedServer(ctx context.Context, serverName string) error

	// BuildAndPublishProject builds the database project at projectPath and
	// publishes it as databaseName to the made instance. Fails with
	// ErrBuildFailed when the build reports failure and ErrNotMade before a
	// successful Make.
	BuildAndPublishProject(ctx context.Context, projectPath, databaseName string) error

	// CreatePublishProfile writes {databaseName}.publish.xml in the base
	// directory from the profile template and returns its path. Returns
	// ErrTemplateNotFound when the template is absent.
	CreatePublishProfile(databaseName, connectionString string) (string, error)

	// DatabaseExists reports whether databaseName exists on the made instance.
	DatabaseExists(ctx context.Context, databaseName string) (bool, error)

	// InstanceName returns the name passed to the most recent Make.
	InstanceName() string

	// Made reports whether the most recent Make succeeded.
	Made() bool
}

// Collaborator interfaces accepted by the With* accessor options. Each has a
// production implementation used by default.
type (
	// FileSystem checks, reads, writes and deletes files and directories.
	FileSystem = core.FileSystem

	// ProcessRunner runs a command to completion and returns its exit code.
	ProcessRunner = core.ProcessRunner

	// ProcessTable lists processes by name and kills them.
	ProcessTable = core.ProcessTable

	// Connector opens SQL connections.
	Connector = core.Connector

	// ProjectBuilder builds and publishes database projects.
	ProjectBuilder = core.ProjectBuilder

	// ProcessInfo describes one OS process returned by ProcessTable.List.
	ProcessInfo = process.Info

	// Conn is an open SQL connection returned by Connector.Open.
	Conn = sqlconn.Conn

	// BuildRequest describes one project build.
	BuildRequest = msbuild.Request
)
