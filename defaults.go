package localdbenv

import "time"

// Default configuration values for NewManager.
// These constants are exported so callers can reference the defaults when
// building custom configurations relative to them (e.g.,
// 3 * DefaultDeletionRetryDelay).
const (
	// DefaultBootstrapConnectionString is the server that receives fake
	// linked server registrations.
	DefaultBootstrapConnectionString = `Server=(localdb)\test;Integrated Security=true;`

	// DefaultLinkedServerProvider is the OLE DB provider recorded for fake
	// linked servers.
	DefaultLinkedServerProvider = "SQLNCLI"

	// DefaultEngineProcessName is the database engine process reaped when
	// an instance directory outlives its registration.
	DefaultEngineProcessName = "sqlservr"

	// DefaultProcessMarker must appear in a reaped engine's executable path,
	// so standalone SQL Server engines on the same host are left running.
	DefaultProcessMarker = `\LocalDB\`

	// DefaultProbeTimeoutSeconds is the connect timeout used to detect an
	// existing instance.
	DefaultProbeTimeoutSeconds = 1

	// DefaultDeletionRetries is how many times deleting a locked instance
	// directory is retried after the first attempt.
	DefaultDeletionRetries = 10

	// DefaultDeletionRetryDelay is the wait between directory deletion
	// attempts, giving the OS time to release file handles of killed
	// processes.
	DefaultDeletionRetryDelay = time.Second

	// DefaultProfileTemplateName is the publish profile template file name
	// inside the base directory.
	DefaultProfileTemplateName = "publish.xml"

	// DefaultLockDirName is the directory name under the system temp
	// directory where per-instance lock files live. The full path is
	// computed as filepath.Join(os.TempDir(), DefaultLockDirName).
	DefaultLockDirName = "localdbenv"

	// DefaultMSBuildPath is the MSBuild binary resolved through PATH.
	DefaultMSBuildPath = "msbuild"

	// DefaultSQLDriver is the database/sql driver used to reach instances.
	DefaultSQLDriver = "sqlserver"
)
