package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/giantswarm/localdbenv/internal/connstr"
	"github.com/giantswarm/localdbenv/internal/fileutil"
	"github.com/giantswarm/localdbenv/internal/process"
	"github.com/giantswarm/localdbenv/internal/sentinel"
	"github.com/giantswarm/localdbenv/internal/sqlconn"
)

// Statements issued while draining an existing instance.
const (
	queryUserDatabases = "SELECT name FROM sys.databases WHERE database_id > 4;"
	stmtSetOffline     = "ALTER DATABASE %s SET OFFLINE WITH ROLLBACK IMMEDIATE;"
	stmtDetach         = "EXEC sp_detach_db @dbname = @Database;"
)

// Manager drives one LocalDB instance lifecycle. It is not safe for
// concurrent use; Make additionally holds a cross-process lock on the
// instance name.
type Manager struct {
	cfg ManagerConfig
	acc Accessors

	name string
	made bool
}

// NewManager creates a Manager. It performs no I/O.
//
// Panics if cfg or acc fail validation. Invalid configuration is a programmer
// error that should be caught at construction time, similar to
// regexp.MustCompile.
func NewManager(cfg ManagerConfig, acc Accessors) *Manager {
	if err := errors.Join(cfg.Validate(), acc.Validate()); err != nil {
		panic(fmt.Sprintf("localdbenv: invalid manager config: %v", err))
	}
	return &Manager{cfg: cfg, acc: acc}
}

// Config returns the manager's configuration.
func (m *Manager) Config() ManagerConfig {
	return m.cfg
}

// InstanceName returns the name passed to the most recent Make, or "" before
// the first call.
func (m *Manager) InstanceName() string {
	return m.name
}

// Made reports whether the most recent Make completed without error.
func (m *Manager) Made() bool {
	return m.made
}

// InstanceDir returns the on-disk directory of the named instance.
func (m *Manager) InstanceDir(name string) string {
	return filepath.Join(m.cfg.InstanceRoot, name)
}

// isPlainName reports whether name stays a single path element when joined
// under the instance root or the lock directory.
func isPlainName(name string) bool {
	return !strings.ContainsAny(name, `/\`) && name != "." && name != ".."
}

// Make tears down any existing instance called instanceName and creates a
// fresh, started one. Preconditions are checked before anything else is
// touched. A failed Make leaves the manager unmade and the old instance
// possibly half torn down; callers retry Make rather than resume.
func (m *Manager) Make(ctx context.Context, instanceName string) error {
	if !m.acc.FS.FileExists(m.cfg.ExecutablePath) {
		return fmt.Errorf("%w: %s", sentinel.Of(ErrPreconditionNotMet, ErrExecutableNotFound), m.cfg.ExecutablePath)
	}
	if !m.acc.FS.DirExists(m.cfg.InstanceRoot) {
		return fmt.Errorf("%w: %s", sentinel.Of(ErrPreconditionNotMet, ErrInstanceRootNotFound), m.cfg.InstanceRoot)
	}
	if strings.TrimSpace(instanceName) == "" {
		return sentinel.Of(ErrInvalidArgument, ErrBlankInstanceName)
	}
	if !isPlainName(instanceName) {
		return fmt.Errorf("%w: %q", sentinel.Of(ErrInvalidArgument, ErrInvalidInstanceName), instanceName)
	}

	m.made = false
	m.name = instanceName
	log := Logger().With("instance", instanceName)

	fl, err := acquireInstanceLock(ctx, m.cfg.LockDir, instanceName)
	if err != nil {
		return err
	}
	defer releaseInstanceLock(log, fl)

	start := time.Now()
	log.Info("making instance")

	if err := m.teardown(ctx, log, instanceName); err != nil {
		return err
	}
	if err := m.create(ctx, log, instanceName); err != nil {
		return err
	}

	m.made = true
	log.Info("instance made", "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

// teardown removes every trace of a previous instance: databases, the
// registration, orphaned engine processes and the instance directory.
func (m *Manager) teardown(ctx context.Context, log *slog.Logger, name string) error {
	if m.instanceExists(ctx, log, name) {
		log.Info("existing instance found, draining")
		if err := m.detachUserDatabases(ctx, log, name); err != nil {
			return err
		}
		if err := m.runTool(ctx, log, ErrStopInstance, name, "stop", name, "-k"); err != nil {
			return err
		}
		if err := m.runTool(ctx, log, ErrDeleteInstance, name, "delete", name); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("tear down instance %s: %w", name, err)
	}

	dir := m.InstanceDir(name)
	if !m.acc.FS.DirExists(dir) {
		return nil
	}
	log.Info("instance directory still present", "dir", dir)
	if err := m.reapEngineProcesses(ctx, log); err != nil {
		return err
	}
	return m.deleteInstanceDirectory(ctx, log, dir)
}

// create registers and starts a fresh instance, then optionally waits for it
// to accept connections.
func (m *Manager) create(ctx context.Context, log *slog.Logger, name string) error {
	if err := m.runTool(ctx, log, ErrCreateInstance, name, "create", name, "-s"); err != nil {
		return err
	}
	if m.cfg.StartupTimeout <= 0 {
		return nil
	}
	return m.waitStarted(ctx, log, name)
}

// probeConnectionString addresses the instance with a short connect timeout.
func (m *Manager) probeConnectionString(name string) string {
	return connstr.New().Server(name).IntegratedSecurity().Timeout(m.cfg.ProbeTimeoutSeconds).String()
}

// instanceConnectionString addresses the instance using integrated security.
func instanceConnectionString(name string) string {
	return connstr.New().Server(name).IntegratedSecurity().String()
}

// instanceExists reports whether a connection to the instance can be opened.
// Any open failure means the instance does not exist.
func (m *Manager) instanceExists(ctx context.Context, log *slog.Logger, name string) bool {
	conn, err := m.acc.Connector.Open(ctx, m.probeConnectionString(name))
	if err != nil {
		log.Debug("instance probe failed, treating as absent", "error", err)
		return false
	}
	_ = conn.Close()
	return true
}

// open opens a connection, classifying failures as ErrConnectivity.
func (m *Manager) open(ctx context.Context, connectionString string) (sqlconn.Conn, error) {
	conn, err := m.acc.Connector.Open(ctx, connectionString)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectivity, err)
	}
	return conn, nil
}

// detachUserDatabases takes every user database offline and detaches it, in
// the order the server lists them.
func (m *Manager) detachUserDatabases(ctx context.Context, log *slog.Logger, name string) error {
	databases, err := m.userDatabases(ctx, name)
	if err != nil {
		return err
	}
	for _, db := range databases {
		if err := m.detachDatabase(ctx, name, db); err != nil {
			return err
		}
		log.Info("database detached", "database", db)
	}
	return nil
}

func (m *Manager) userDatabases(ctx context.Context, name string) ([]string, error) {
	conn, err := m.open(ctx, instanceConnectionString(name))
	if err != nil {
		return nil, fmt.Errorf("list databases on %s: %w", name, err)
	}
	defer conn.Close()

	databases, err := conn.QueryColumn(ctx, queryUserDatabases)
	if err != nil {
		return nil, fmt.Errorf("%w: list databases on %s: %w", ErrConnectivity, name, err)
	}
	return databases, nil
}

// detachDatabase must take the database offline first: detaching an online
// database with live sessions fails.
func (m *Manager) detachDatabase(ctx context.Context, name, database string) error {
	conn, err := m.open(ctx, instanceConnectionString(name))
	if err != nil {
		return fmt.Errorf("detach database %s: %w", database, err)
	}
	defer conn.Close()

	if err := conn.Exec(ctx, fmt.Sprintf(stmtSetOffline, QuoteIdentifier(database))); err != nil {
		return fmt.Errorf("%w: take database %s offline: %w", ErrConnectivity, database, err)
	}
	if err := conn.Exec(ctx, stmtDetach, sql.Named("Database", database)); err != nil {
		return fmt.Errorf("%w: detach database %s: %w", ErrConnectivity, database, err)
	}
	return nil
}

// QuoteIdentifier bracket-quotes a SQL Server identifier, doubling any
// closing bracket.
func QuoteIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

// runTool invokes the instance-manager CLI and fails with a *ToolError for
// step unless it exits 0.
func (m *Manager) runTool(ctx context.Context, log *slog.Logger, step sentinel.Error, name string, args ...string) error {
	log.Info("running instance manager", "args", args)
	code, err := m.acc.Runner.Run(ctx, m.cfg.ExecutablePath, args...)
	if err != nil {
		return &ToolError{Step: step, Instance: name, ExitCode: -1, Err: err}
	}
	if code != 0 {
		return &ToolError{Step: step, Instance: name, ExitCode: code}
	}
	return nil
}

// reapEngineProcesses kills engine processes whose executable path carries
// the LocalDB marker. Matching on the path leaves unrelated SQL Server
// engines on the host alone. Kill failures are logged and skipped.
func (m *Manager) reapEngineProcesses(ctx context.Context, log *slog.Logger) error {
	procs, err := m.acc.Processes.List(ctx, m.cfg.EngineProcessName)
	if err != nil {
		return fmt.Errorf("list %s processes: %w", m.cfg.EngineProcessName, err)
	}

	marker := strings.ToLower(m.cfg.ProcessMarker)
	for _, p := range procs {
		if !process.NameMatches(p.Name, m.cfg.EngineProcessName) {
			continue
		}
		if p.Executable == "" || !strings.Contains(strings.ToLower(p.Executable), marker) {
			continue
		}
		if err := m.acc.Processes.Kill(ctx, p.PID); err != nil {
			log.Warn("failed to kill engine process", "pid", p.PID, "executable", p.Executable, "error", err)
			continue
		}
		log.Info("killed engine process", "pid", p.PID, "executable", p.Executable)
	}
	return nil
}

// deleteInstanceDirectory removes dir, retrying only while it is locked.
// There is one attempt plus DeletionRetries retries, DeletionRetryDelay apart.
func (m *Manager) deleteInstanceDirectory(ctx context.Context, log *slog.Logger, dir string) error {
	backoff := wait.Backoff{
		Duration: m.cfg.DeletionRetryDelay,
		Factor:   1,
		Steps:    m.cfg.DeletionRetries + 1,
	}

	var attempts int
	var lastLocked, fatal error
	err := wait.ExponentialBackoffWithContext(ctx, backoff, func(context.Context) (bool, error) {
		attempts++
		err := m.acc.FS.RemoveDir(dir)
		if err == nil {
			return true, nil
		}
		if errors.Is(err, fileutil.ErrLocked) {
			lastLocked = err
			log.Debug("instance directory locked, retrying", "dir", dir, "attempt", attempts, "error", err)
			return false, nil
		}
		fatal = err
		return false, err
	})

	switch {
	case err == nil:
		log.Info("instance directory deleted", "dir", dir, "attempts", attempts)
		return nil
	case fatal != nil:
		return fmt.Errorf("delete instance directory %s: %w", dir, fatal)
	case ctx.Err() != nil:
		return fmt.Errorf("delete instance directory %s: %w", dir, ctx.Err())
	default:
		return fmt.Errorf("%w: %s after %d attempts: %w",
			sentinel.Of(ErrTimeout, ErrDeleteTimeout), dir, attempts, lastLocked)
	}
}

// waitStarted polls the probe connection until the new instance accepts
// connections or StartupTimeout elapses.
func (m *Manager) waitStarted(ctx context.Context, log *slog.Logger, name string) error {
	cs := m.probeConnectionString(name)
	err := process.WaitReady(ctx, process.WaitReadyConfig{
		Interval: m.cfg.StartupPollInterval,
		Timeout:  m.cfg.StartupTimeout,
		Target:   fmt.Sprintf("instance %q", name),
		Logger:   log,
	}, func(pollCtx context.Context) error {
		conn, err := m.acc.Connector.Open(pollCtx, cs)
		if err != nil {
			return err
		}
		return conn.Close()
	})
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("wait for instance %s: %w", name, ctx.Err())
	}
	return fmt.Errorf("%w: %w", sentinel.Of(ErrTimeout, ErrInstanceNotReady), err)
}

// requireMade fails with ErrNotMade until Make has succeeded.
func (m *Manager) requireMade() error {
	if !m.made {
		return sentinel.Of(ErrPreconditionNotMet, ErrNotMade)
	}
	return nil
}
