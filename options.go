package localdbenv

import (
	"fmt"
	"strings"
	"time"
)

// requirePositive panics if v <= 0 with a descriptive message.
func requirePositive[T int | time.Duration](name string, v T) {
	if v <= 0 {
		panic(fmt.Sprintf("localdbenv: %s must be greater than 0, got %v", name, v))
	}
}

// requireNonNegative panics if v < 0 with a descriptive message.
func requireNonNegative[T int | time.Duration](name string, v T) {
	if v < 0 {
		panic(fmt.Sprintf("localdbenv: %s must not be negative, got %v", name, v))
	}
}

// requireNonEmpty panics if s is empty or whitespace-only with a descriptive
// message.
func requireNonEmpty(name, s string) {
	if strings.TrimSpace(s) == "" {
		panic(fmt.Sprintf("localdbenv: %s must not be empty", name))
	}
}

// requireNonNil panics if v is nil with a descriptive message.
func requireNonNil(name string, v any) {
	if v == nil {
		panic(fmt.Sprintf("localdbenv: %s must not be nil", name))
	}
}

// ManagerOption configures a Manager during construction via NewManager.
// Each With* function returns a ManagerOption that sets a specific field.
//
// With* functions panic on invalid input (empty paths, negative counts,
// non-positive durations, nil collaborators). Option values are typically
// constants, so an invalid value is a programmer error, and the pattern
// mirrors [regexp.MustCompile].
type ManagerOption func(*managerConfig)

// WithBaseDir sets the directory holding the publish profile template,
// generated profiles and build logs. It is also passed to the build as OutDir.
//
// Default: the directory of the running executable.
//
// Panics if dir is empty.
func WithBaseDir(dir string) ManagerOption {
	requireNonEmpty("base directory", dir)
	return func(c *managerConfig) {
		c.BaseDir = dir
	}
}

// WithBootstrapConnectionString sets the server AddFakeLinkedServer
// registers linked servers on.
//
// Default: DefaultBootstrapConnectionString.
//
// Panics if cs is empty.
func WithBootstrapConnectionString(cs string) ManagerOption {
	requireNonEmpty("bootstrap connection string", cs)
	return func(c *managerConfig) {
		c.BootstrapConnectionString = cs
	}
}

// WithLinkedServerProvider sets the OLE DB provider recorded for fake linked
// servers.
//
// Default: "SQLNCLI".
//
// Panics if provider is empty.
func WithLinkedServerProvider(provider string) ManagerOption {
	requireNonEmpty("linked server provider", provider)
	return func(c *managerConfig) {
		c.LinkedServerProvider = provider
	}
}

// WithEngineProcessName sets the process name of the database engine reaped
// when an instance directory outlives its registration. Matching ignores case
// and a ".exe" suffix.
//
// Default: "sqlservr".
//
// Panics if name is empty.
func WithEngineProcessName(name string) ManagerOption {
	requireNonEmpty("engine process name", name)
	return func(c *managerConfig) {
		c.EngineProcessName = name
	}
}

// WithProcessMarker sets the substring that must appear, ignoring case, in a
// reaped engine's executable path.
//
// Default: `\LocalDB\`.
//
// Panics if marker is empty.
func WithProcessMarker(marker string) ManagerOption {
	if marker == "" {
		panic("localdbenv: process marker must not be empty")
	}
	return func(c *managerConfig) {
		c.ProcessMarker = marker
	}
}

// WithProbeTimeout sets the connect timeout, in whole seconds, used to detect
// an existing instance.
//
// Default: 1.
//
// Panics if seconds <= 0.
func WithProbeTimeout(seconds int) ManagerOption {
	requirePositive("probe timeout", seconds)
	return func(c *managerConfig) {
		c.ProbeTimeoutSeconds = seconds
	}
}

// WithDeletionRetries sets how many times deleting a locked instance
// directory is retried after the first attempt. Zero disables retries.
//
// Default: 10.
//
// Panics if n < 0.
func WithDeletionRetries(n int) ManagerOption {
	requireNonNegative("deletion retries", n)
	return func(c *managerConfig) {
		c.DeletionRetries = n
	}
}

// WithDeletionRetryDelay sets the wait between instance directory deletion
// attempts.
//
// Default: 1 second.
//
// Panics if d < 0.
func WithDeletionRetryDelay(d time.Duration) ManagerOption {
	requireNonNegative("deletion retry delay", d)
	return func(c *managerConfig) {
		c.DeletionRetryDelay = d
	}
}

// WithProfileTemplateName sets the publish profile template file name inside
// the base directory.
//
// Default: "publish.xml".
//
// Panics if name is empty.
func WithProfileTemplateName(name string) ManagerOption {
	requireNonEmpty("profile template name", name)
	return func(c *managerConfig) {
		c.ProfileTemplateName = name
	}
}

// WithLockDir sets the directory for per-instance lock files. Useful in CI
// environments where jobs that share a host must not tear down each other's
// instances while using different temp directories.
//
// Default: filepath.Join(os.TempDir(), DefaultLockDirName).
//
// Panics if dir is empty.
func WithLockDir(dir string) ManagerOption {
	requireNonEmpty("lock directory", dir)
	return func(c *managerConfig) {
		c.LockDir = dir
	}
}

// WithStartupWait makes Make poll the new instance every interval until it
// accepts connections, failing with ErrInstanceNotReady after timeout.
//
// Default: disabled.
//
// Panics if timeout <= 0 or interval <= 0.
func WithStartupWait(timeout, interval time.Duration) ManagerOption {
	requirePositive("startup timeout", timeout)
	requirePositive("startup poll interval", interval)
	return func(c *managerConfig) {
		c.StartupTimeout = timeout
		c.StartupPollInterval = interval
	}
}

// WithToolLogDir makes the production process runner write the output of
// every SqlLocalDB and MSBuild invocation to files in dir. Without it,
// output is captured in memory and attached to the warning logged for a
// failed invocation.
//
// Panics if dir is empty.
func WithToolLogDir(dir string) ManagerOption {
	requireNonEmpty("tool log directory", dir)
	return func(c *managerConfig) {
		c.toolLogDir = dir
	}
}

// WithMSBuildPath sets the MSBuild executable used by the production project
// builder.
//
// Default: "msbuild", resolved through PATH.
//
// Panics if path is empty.
func WithMSBuildPath(path string) ManagerOption {
	requireNonEmpty("MSBuild path", path)
	return func(c *managerConfig) {
		c.msbuildPath = path
	}
}

// WithSQLDriver sets the database/sql driver name used by the production
// connector. The driver must be registered by the caller.
//
// Default: "sqlserver".
//
// Panics if driver is empty.
func WithSQLDriver(driver string) ManagerOption {
	requireNonEmpty("SQL driver", driver)
	return func(c *managerConfig) {
		c.sqlDriver = driver
	}
}

// WithFileSystem replaces the production file system accessor.
// Panics if fs is nil.
func WithFileSystem(fs FileSystem) ManagerOption {
	requireNonNil("file system", fs)
	return func(c *managerConfig) {
		c.accessors.FS = fs
	}
}

// WithProcessRunner replaces the production process runner used for
// SqlLocalDB invocations. It does not affect the production project builder.
// Panics if r is nil.
func WithProcessRunner(r ProcessRunner) ManagerOption {
	requireNonNil("process runner", r)
	return func(c *managerConfig) {
		c.accessors.Runner = r
	}
}

// WithProcessTable replaces the production process table.
// Panics if t is nil.
func WithProcessTable(t ProcessTable) ManagerOption {
	requireNonNil("process table", t)
	return func(c *managerConfig) {
		c.accessors.Processes = t
	}
}

// WithConnector replaces the production SQL connector.
// Panics if conn is nil.
func WithConnector(conn Connector) ManagerOption {
	requireNonNil("connector", conn)
	return func(c *managerConfig) {
		c.accessors.Connector = conn
	}
}

// WithProjectBuilder replaces the production project builder.
// Panics if b is nil.
func WithProjectBuilder(b ProjectBuilder) ManagerOption {
	requireNonNil("project builder", b)
	return func(c *managerConfig) {
		c.accessors.Builder = b
	}
}
