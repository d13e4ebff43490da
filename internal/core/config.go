package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ManagerConfig holds configuration for a Manager. All fields are immutable
// after construction via NewManager.
type ManagerConfig struct {
	// ExecutablePath is the instance-manager CLI (SqlLocalDB.exe). Its
	// existence is checked by Make, not by Validate.
	ExecutablePath string

	// InstanceRoot is the directory holding one subdirectory per instance.
	// Its existence is checked by Make, not by Validate.
	InstanceRoot string

	// BaseDir holds the publish profile template, generated profiles and
	// build logs, and is passed to the build as OutDir.
	BaseDir string

	// BootstrapConnectionString is the server AddFakeLinkedServer connects
	// to. Default: DefaultBootstrapConnectionString.
	BootstrapConnectionString string

	// LinkedServerProvider is the OLE DB provider registered for fake
	// linked servers. Default: "SQLNCLI".
	LinkedServerProvider string

	// EngineProcessName is the database engine process name reaped when an
	// instance directory outlives its registration. Default: "sqlservr".
	EngineProcessName string

	// ProcessMarker must appear (case-insensitively) in a reaped process's
	// executable path. Default: `\LocalDB\`.
	ProcessMarker string

	// ProbeTimeoutSeconds is the connection timeout used to detect whether
	// an instance exists. Default: 1.
	ProbeTimeoutSeconds int

	// DeletionRetries is how many times directory deletion is retried after
	// the first locked-resource failure. Default: 10.
	DeletionRetries int

	// DeletionRetryDelay is the wait between deletion attempts. Default: 1s.
	DeletionRetryDelay time.Duration

	// ProfileTemplateName is the template file name inside BaseDir.
	// Default: "publish.xml".
	ProfileTemplateName string

	// LockDir holds per-instance lock files taken during Make.
	LockDir string

	// StartupTimeout, when positive, makes Make wait until the new instance
	// accepts connections. Zero disables the wait.
	StartupTimeout time.Duration

	// StartupPollInterval is the probe interval while waiting for startup.
	// Required when StartupTimeout is positive.
	StartupPollInterval time.Duration
}

// Validate checks all ManagerConfig invariants and returns an error describing
// every violation found, joined with errors.Join.
//
// Validate is called by NewManager, which panics on error since invalid
// config is a programmer error.
func (c ManagerConfig) Validate() error {
	var errs []error

	if strings.TrimSpace(c.BaseDir) == "" {
		errs = append(errs, errors.New("base directory must not be empty"))
	}
	if strings.TrimSpace(c.BootstrapConnectionString) == "" {
		errs = append(errs, errors.New("bootstrap connection string must not be empty"))
	}
	if strings.TrimSpace(c.LinkedServerProvider) == "" {
		errs = append(errs, errors.New("linked server provider must not be empty"))
	}
	if strings.TrimSpace(c.EngineProcessName) == "" {
		errs = append(errs, errors.New("engine process name must not be empty"))
	}
	if c.ProcessMarker == "" {
		errs = append(errs, errors.New("process marker must not be empty"))
	}
	if c.ProbeTimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("probe timeout must be greater than 0, got %d", c.ProbeTimeoutSeconds))
	}
	if c.DeletionRetries < 0 {
		errs = append(errs, fmt.Errorf("deletion retries must not be negative, got %d", c.DeletionRetries))
	}
	if c.DeletionRetryDelay < 0 {
		errs = append(errs, fmt.Errorf("deletion retry delay must not be negative, got %s", c.DeletionRetryDelay))
	}
	if strings.TrimSpace(c.ProfileTemplateName) == "" {
		errs = append(errs, errors.New("profile template name must not be empty"))
	}
	if strings.TrimSpace(c.LockDir) == "" {
		errs = append(errs, errors.New("lock directory must not be empty"))
	}
	if c.StartupTimeout < 0 {
		errs = append(errs, fmt.Errorf("startup timeout must not be negative, got %s", c.StartupTimeout))
	}
	if c.StartupTimeout > 0 && c.StartupPollInterval <= 0 {
		errs = append(errs, fmt.Errorf("startup poll interval must be greater than 0 when startup timeout is set, got %s", c.StartupPollInterval))
	}

	return errors.Join(errs...)
}
