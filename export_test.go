package localdbenv

import (
	"log/slog"
	"time"

	"github.com/giantswarm/localdbenv/internal/msbuild"
	"github.com/giantswarm/localdbenv/internal/process"
	"github.com/giantswarm/localdbenv/internal/sqlconn"
)

// ConfigSnapshot holds a copy of managerConfig fields for test assertions.
// Exported only via export_test.go so that the _test package can verify
// option closures actually mutate the config without accessing internals.
type ConfigSnapshot struct {
	ExecutablePath            string
	InstanceRoot              string
	BaseDir                   string
	BootstrapConnectionString string
	LinkedServerProvider      string
	EngineProcessName         string
	ProcessMarker             string
	ProbeTimeoutSeconds       int
	DeletionRetries           int
	DeletionRetryDelay        time.Duration
	ProfileTemplateName       string
	LockDir                   string
	StartupTimeout            time.Duration
	StartupPollInterval       time.Duration
	ToolLogDir                string
	MSBuildPath               string
	SQLDriver                 string
	HasFileSystem             bool
	HasProcessRunner          bool
	HasProcessTable           bool
	HasConnector              bool
	HasProjectBuilder         bool
}

// ApplyOptionsForTesting creates a default managerConfig, applies the given
// options, and returns a ConfigSnapshot of the result.
func ApplyOptionsForTesting(executablePath, instanceRoot string, opts ...ManagerOption) ConfigSnapshot {
	cfg := defaultManagerConfig(executablePath, instanceRoot)
	for _, opt := range opts {
		opt(&cfg)
	}

	return ConfigSnapshot{
		ExecutablePath:            cfg.ExecutablePath,
		InstanceRoot:              cfg.InstanceRoot,
		BaseDir:                   cfg.BaseDir,
		BootstrapConnectionString: cfg.BootstrapConnectionString,
		LinkedServerProvider:      cfg.LinkedServerProvider,
		EngineProcessName:         cfg.EngineProcessName,
		ProcessMarker:             cfg.ProcessMarker,
		ProbeTimeoutSeconds:       cfg.ProbeTimeoutSeconds,
		DeletionRetries:           cfg.DeletionRetries,
		DeletionRetryDelay:        cfg.DeletionRetryDelay,
		ProfileTemplateName:       cfg.ProfileTemplateName,
		LockDir:                   cfg.LockDir,
		StartupTimeout:            cfg.StartupTimeout,
		StartupPollInterval:       cfg.StartupPollInterval,
		ToolLogDir:                cfg.toolLogDir,
		MSBuildPath:               cfg.msbuildPath,
		SQLDriver:                 cfg.sqlDriver,
		HasFileSystem:             cfg.accessors.FS != nil,
		HasProcessRunner:          cfg.accessors.Runner != nil,
		HasProcessTable:           cfg.accessors.Processes != nil,
		HasConnector:              cfg.accessors.Connector != nil,
		HasProjectBuilder:         cfg.accessors.Builder != nil,
	}
}

// ProductionLoggersForTesting resolves, at call time, the loggers of the
// production process runner, process table and MSBuild builder.
func ProductionLoggersForTesting(executablePath, instanceRoot string) map[string]*slog.Logger {
	acc := defaultManagerConfig(executablePath, instanceRoot).toAccessors()
	return map[string]*slog.Logger{
		"runner":  acc.Runner.(process.Runner).Logger(),
		"table":   acc.Processes.(process.Table).Logger(),
		"builder": acc.Builder.(msbuild.Builder).Logger(),
	}
}

// ProductionConnectorForTesting returns the connector built when no
// Connector option is given.
func ProductionConnectorForTesting(executablePath, instanceRoot string, opts ...ManagerOption) sqlconn.Connector {
	cfg := defaultManagerConfig(executablePath, instanceRoot)
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.toAccessors().Connector.(sqlconn.Connector)
}
