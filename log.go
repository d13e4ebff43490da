package localdbenv

import (
	"log/slog"

	"github.com/giantswarm/localdbenv/internal/core"
)

// SetLogger replaces the package-level logger used by localdbenv. The
// provided logger should already carry any desired attributes; localdbenv
// adds only per-operation attributes such as "instance".
//
// If l is nil, the logger resets to the default: slog.Default() with a
// "component" attribute, re-derived on the next use and then cached. Call
// SetLogger(nil) after slog.SetDefault() to pick up changes.
//
// Managers created before the call, including their process and MSBuild
// collaborators, log through the new logger from their next operation on.
//
// Example:
//
//	localdbenv.SetLogger(myLogger.With("component", "localdbenv"))
func SetLogger(l *slog.Logger) {
	core.SetLogger(l)
}
