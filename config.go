package localdbenv

import (
	"github.com/giantswarm/localdbenv/internal/core"
	"github.com/giantswarm/localdbenv/internal/fileutil"
	"github.com/giantswarm/localdbenv/internal/msbuild"
	"github.com/giantswarm/localdbenv/internal/process"
	"github.com/giantswarm/localdbenv/internal/sqlconn"
)

// managerConfig holds configuration for a Manager. It wraps
// core.ManagerConfig via embedding, keeping internal/core types out of the
// public API signature, and adds the settings of the production
// collaborators.
type managerConfig struct {
	core.ManagerConfig

	// Collaborator overrides; nil selects the production implementation.
	accessors core.Accessors

	toolLogDir  string
	msbuildPath string
	sqlDriver   string
}

// toCoreConfig returns the embedded core.ManagerConfig.
func (c managerConfig) toCoreConfig() core.ManagerConfig {
	return c.ManagerConfig
}

// toAccessors fills every collaborator not overridden by an option with its
// production implementation.
func (c managerConfig) toAccessors() core.Accessors {
	acc := c.accessors
	runner := process.Runner{LogDir: c.toolLogDir, Logger: core.Logger}

	if acc.FS == nil {
		acc.FS = fileutil.OS{}
	}
	if acc.Runner == nil {
		acc.Runner = runner
	}
	if acc.Processes == nil {
		acc.Processes = process.Table{Logger: core.Logger}
	}
	if acc.Connector == nil {
		// LocalDB pipe lookups go through the configured runner when it can
		// capture output.
		info, ok := acc.Runner.(sqlconn.InfoRunner)
		if !ok {
			info = runner
		}
		acc.Connector = sqlconn.Connector{
			Driver:     c.sqlDriver,
			Executable: c.ExecutablePath,
			Runner:     info,
		}
	}
	if acc.Builder == nil {
		acc.Builder = msbuild.Builder{Executable: c.msbuildPath, Runner: runner, Logger: core.Logger}
	}
	return acc
}
