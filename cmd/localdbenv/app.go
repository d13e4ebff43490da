package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/giantswarm/localdbenv"
	"github.com/giantswarm/localdbenv/internal/config"
	"github.com/giantswarm/localdbenv/internal/logging"
)

// startupPollInterval is how often a configured startup wait probes the new
// instance.
const startupPollInterval = 500 * time.Millisecond

var errNoInstanceName = errors.New("instance name is required (pass NAME or set instance in the config)")

// app carries state shared by every command: the loaded configuration, the
// logger and the Manager factory.
type app struct {
	configPath string

	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer

	// newManager builds the Manager for a command. Tests replace it.
	newManager func(cfg *config.Config) localdbenv.Manager

	// out receives command output and errors; nil means the process streams.
	out io.Writer
}

func newApp() *app {
	return &app{newManager: managerFromConfig}
}

// run executes the command line args and returns the process exit code.
func run(ctx context.Context, a *app, args []string) int {
	root := a.rootCmd()
	root.SetArgs(args)
	if a.out != nil {
		root.SetOut(a.out)
		root.SetErr(a.out)
	}
	err := root.ExecuteContext(ctx)
	if a.closer != nil {
		_ = a.closer.Close()
	}
	if err != nil {
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "localdbenv",
		Short: "Disposable LocalDB instances for integration tests",
		Long: `localdbenv tears down and recreates SQL Server LocalDB instances, registers
fake linked servers and publishes database projects to them.

  localdbenv make integration
  localdbenv up integration --project Db.sqlproj --database Orders --link-server REMOTE
  localdbenv profile --database Orders`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file path (default ./localdbenv.yaml or ~/.config/localdbenv/localdbenv.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("executable", "", "path to SqlLocalDB.exe")
	flags.String("instance-root", "", "directory holding LocalDB instance directories")
	flags.String("base-dir", "", "directory holding the publish profile template and build output")
	flags.String("log-file", "", "write JSON logs to this rotating file instead of stderr")

	root.AddCommand(
		a.makeCmd(),
		a.upCmd(),
		a.profileCmd(),
	)
	return root
}

// load reads the configuration and installs the logger before any command
// runs.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	logger, closer, err := logging.New(cfg.Log, cfg.Debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.cfg, a.logger, a.closer = cfg, logger, closer
	localdbenv.SetLogger(logger.With("component", "localdbenv"))
	return nil
}

// instanceName picks the positional NAME, falling back to the configured
// instance.
func (a *app) instanceName(args []string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}
	if strings.TrimSpace(a.cfg.Instance) != "" {
		return a.cfg.Instance, nil
	}
	return "", errNoInstanceName
}

// managerFromConfig translates cfg into Manager options. Unset values keep
// the library defaults.
//
//nolint:ireturn // Manager is the library's public surface.
func managerFromConfig(cfg *config.Config) localdbenv.Manager {
	var opts []localdbenv.ManagerOption
	if cfg.BaseDir != "" {
		opts = append(opts, localdbenv.WithBaseDir(cfg.BaseDir))
	}
	if cfg.BootstrapConnectionString != "" {
		opts = append(opts, localdbenv.WithBootstrapConnectionString(cfg.BootstrapConnectionString))
	}
	if cfg.LinkedServerProvider != "" {
		opts = append(opts, localdbenv.WithLinkedServerProvider(cfg.LinkedServerProvider))
	}
	if cfg.MSBuild != "" {
		opts = append(opts, localdbenv.WithMSBuildPath(cfg.MSBuild))
	}
	if cfg.LockDir != "" {
		opts = append(opts, localdbenv.WithLockDir(cfg.LockDir))
	}
	if cfg.ToolLogDir != "" {
		opts = append(opts, localdbenv.WithToolLogDir(cfg.ToolLogDir))
	}
	if cfg.DeletionRetries >= 0 {
		opts = append(opts, localdbenv.WithDeletionRetries(cfg.DeletionRetries))
	}
	if cfg.DeletionRetryDelay > 0 {
		opts = append(opts, localdbenv.WithDeletionRetryDelay(cfg.DeletionRetryDelay))
	}
	if cfg.StartupTimeout > 0 {
		opts = append(opts, localdbenv.WithStartupWait(cfg.StartupTimeout, startupPollInterval))
	}
	return localdbenv.NewManager(cfg.Executable, cfg.InstanceRoot, opts...)
}
