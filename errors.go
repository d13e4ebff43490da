package localdbenv

import "github.com/giantswarm/localdbenv/internal/core"

// Error kinds. Every error returned by a Manager matches one kind via
// errors.Is. These are immutable constants safe for use in wrapped error
// chain comparison.
const (
	// ErrPreconditionNotMet is returned when the environment or the manager
	// state does not allow the operation.
	ErrPreconditionNotMet = core.ErrPreconditionNotMet

	// ErrInvalidArgument is returned for blank arguments and blank
	// connection string fragments.
	ErrInvalidArgument = core.ErrInvalidArgument

	// ErrConnectivity is returned when a SQL connection or statement fails.
	// A failed existence probe during Make is not an error.
	ErrConnectivity = core.ErrConnectivity

	// ErrToolFailed is returned when SqlLocalDB or MSBuild exits
	// unsuccessfully.
	ErrToolFailed = core.ErrToolFailed

	// ErrTimeout is returned when a bounded wait runs out.
	ErrTimeout = core.ErrTimeout

	// ErrTemplateNotFound is returned when the publish profile template is
	// absent from the base directory.
	ErrTemplateNotFound = core.ErrTemplateNotFound
)

// Specific errors, each matched together with its kind.
const (
	// ErrExecutableNotFound: the SqlLocalDB executable does not exist
	// (ErrPreconditionNotMet).
	ErrExecutableNotFound = core.ErrExecutableNotFound

	// ErrInstanceRootNotFound: the instance root directory does not exist
	// (ErrPreconditionNotMet).
	ErrInstanceRootNotFound = core.ErrInstanceRootNotFound

	// ErrBlankInstanceName: Make was called with a blank name
	// (ErrInvalidArgument).
	ErrBlankInstanceName = core.ErrBlankInstanceName

	// ErrInvalidInstanceName: Make was called with a name containing a path
	// separator, or "." or ".." (ErrInvalidArgument).
	ErrInvalidInstanceName = core.ErrInvalidInstanceName

	// ErrNotMade: the operation requires a successful Make
	// (ErrPreconditionNotMet).
	ErrNotMade = core.ErrNotMade

	// ErrStopInstance: "stop {name} -k" failed (ErrToolFailed).
	ErrStopInstance = core.ErrStopInstance

	// ErrDeleteInstance: "delete {name}" failed (ErrToolFailed).
	ErrDeleteInstance = core.ErrDeleteInstance

	// ErrCreateInstance: "create {name} -s" failed (ErrToolFailed).
	ErrCreateInstance = core.ErrCreateInstance

	// ErrBuildFailed: the project did not build or publish (ErrToolFailed).
	ErrBuildFailed = core.ErrBuildFailed

	// ErrDeleteTimeout: the instance directory stayed locked through every
	// deletion attempt (ErrTimeout).
	ErrDeleteTimeout = core.ErrDeleteTimeout

	// ErrInstanceNotReady: the instance did not accept connections within
	// the startup timeout (ErrTimeout).
	ErrInstanceNotReady = core.ErrInstanceNotReady
)

// ToolError reports an unsuccessful SqlLocalDB step. It matches the step's
// specific error and ErrToolFailed.
type ToolError = core.ToolError
