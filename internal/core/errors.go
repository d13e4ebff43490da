package core

import (
	"fmt"

	"github.com/giantswarm/localdbenv/internal/connstr"
	"github.com/giantswarm/localdbenv/internal/sentinel"
)

// Error kinds. Every error returned by Manager matches exactly one kind via
// errors.Is, plus the specific error naming the failed condition.
const (
	// ErrPreconditionNotMet indicates the manager or its environment is not in
	// a state that allows the operation.
	ErrPreconditionNotMet = sentinel.Error("precondition not met")

	// ErrInvalidArgument is re-exported from connstr so blank fragments and
	// blank operation arguments share one kind.
	ErrInvalidArgument = connstr.ErrInvalidArgument

	// ErrConnectivity indicates a SQL connection could not be opened or a
	// statement failed on an open connection.
	ErrConnectivity = sentinel.Error("connectivity failure")

	// ErrToolFailed indicates an external tool exited unsuccessfully.
	ErrToolFailed = sentinel.Error("external tool failed")

	// ErrTimeout indicates a bounded wait ran out.
	ErrTimeout = sentinel.Error("timeout")

	// ErrTemplateNotFound is returned when the publish profile template is absent.
	ErrTemplateNotFound = sentinel.Error("publish profile template not found")
)

// Specific errors, joined with their kind at the return site.
const (
	ErrExecutableNotFound   = sentinel.Error("executable not found")
	ErrInstanceRootNotFound = sentinel.Error("instance directory not found")
	ErrBlankInstanceName    = sentinel.Error("instance name must not be blank")
	ErrInvalidInstanceName  = sentinel.Error("instance name must not contain path separators or be a dot segment")
	ErrNotMade              = sentinel.Error("the instance has not been made")
	ErrStopInstance         = sentinel.Error("failed to stop instance")
	ErrDeleteInstance       = sentinel.Error("failed to delete instance")
	ErrCreateInstance       = sentinel.Error("failed to create instance")
	ErrBuildFailed          = sentinel.Error("the project did not build successfully")
	ErrDeleteTimeout        = sentinel.Error("timed out deleting instance directory")
	ErrInstanceNotReady     = sentinel.Error("instance did not accept connections")
)

// ToolError reports an unsuccessful instance-manager step: either a non-zero
// exit, or a failure to run the tool at all (Err set, ExitCode -1). It
// matches Step, ErrToolFailed and Err via errors.Is.
type ToolError struct {
	Step     sentinel.Error
	Instance string
	ExitCode int
	Err      error
}

func (e *ToolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %q: %v", e.Step, e.Instance, e.Err)
	}
	return fmt.Sprintf("%s %q: exit code %d", e.Step, e.Instance, e.ExitCode)
}

// Unwrap returns the step sentinel, ErrToolFailed and Err when set.
func (e *ToolError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Step, ErrToolFailed, e.Err}
	}
	return []error{e.Step, ErrToolFailed}
}

// blankArgument returns an ErrInvalidArgument naming the blank parameter.
func blankArgument(name string) error {
	return fmt.Errorf("%w: %s must not be blank", ErrInvalidArgument, name)
}
