package localdbenv

import (
	"context"
	"os"
	"path/filepath"

	"github.com/giantswarm/localdbenv/internal/core"
	"github.com/giantswarm/localdbenv/internal/fileutil"
)

// Compile-time interface satisfaction check.
var _ Manager = (*managerWrapper)(nil)

// managerWrapper wraps core.Manager to implement the Manager interface.
//
// The core.Manager is stored as a named (unexported) field rather than
// embedded to prevent callers from using type assertions to reach internal
// methods that are not part of the public Manager interface.
type managerWrapper struct {
	mgr *core.Manager
}

func (w *managerWrapper) Make(ctx context.Context, instanceName string) error {
	return w.mgr.Make(ctx, instanceName)
}

func (w *managerWrapper) AddFakeLinkedServer(ctx context.Context, serverName string) error {
	return w.mgr.AddFakeLinkedServer(ctx, serverName)
}

func (w *managerWrapper) BuildAndPublishProject(ctx context.Context, projectPath, databaseName string) error {
	return w.mgr.BuildAndPublishProject(ctx, projectPath, databaseName)
}

func (w *managerWrapper) CreatePublishProfile(databaseName, connectionString string) (string, error) {
	return w.mgr.CreatePublishProfile(databaseName, connectionString)
}

func (w *managerWrapper) DatabaseExists(ctx context.Context, databaseName string) (bool, error) {
	return w.mgr.DatabaseExists(ctx, databaseName)
}

func (w *managerWrapper) InstanceName() string {
	return w.mgr.InstanceName()
}

func (w *managerWrapper) Made() bool {
	return w.mgr.Made()
}

// defaultManagerConfig returns a managerConfig populated with all default
// values. Both NewManager and test helpers use this to avoid duplicating
// the default field assignments.
func defaultManagerConfig(executablePath, instanceRoot string) managerConfig {
	baseDir, err := fileutil.BaseDirectory()
	if err != nil {
		baseDir = "."
	}
	return managerConfig{
		ManagerConfig: core.ManagerConfig{
			ExecutablePath:            executablePath,
			InstanceRoot:              instanceRoot,
			BaseDir:                   baseDir,
			BootstrapConnectionString: DefaultBootstrapConnectionString,
			LinkedServerProvider:      DefaultLinkedServerProvider,
			EngineProcessName:         DefaultEngineProcessName,
			ProcessMarker:             DefaultProcessMarker,
			ProbeTimeoutSeconds:       DefaultProbeTimeoutSeconds,
			DeletionRetries:           DefaultDeletionRetries,
			DeletionRetryDelay:        DefaultDeletionRetryDelay,
			ProfileTemplateName:       DefaultProfileTemplateName,
			LockDir:                   filepath.Join(os.TempDir(), DefaultLockDirName),
		},
		msbuildPath: DefaultMSBuildPath,
		sqlDriver:   DefaultSQLDriver,
	}
}

// NewManager returns a Manager for instances registered by the SqlLocalDB
// executable at executablePath and stored under instanceRoot. Neither path
// is checked here; Make reports missing paths as ErrPreconditionNotMet.
// This performs no I/O operations.
//
// Each call returns an independent Manager.
//
// Panics if any option receives an invalid value. See individual With*
// functions for constraints.
//
//nolint:ireturn // Manager is the public surface; callers may substitute their own.
func NewManager(executablePath, instanceRoot string, opts ...ManagerOption) Manager {
	cfg := defaultManagerConfig(executablePath, instanceRoot)
	for _, opt := range opts {
		opt(&cfg)
	}
	return &managerWrapper{mgr: core.NewManager(cfg.toCoreConfig(), cfg.toAccessors())}
}
