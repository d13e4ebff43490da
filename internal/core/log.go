package core

import (
	"log/slog"
	"sync/atomic"
)

// logger is the package-level logger, stored as an atomic pointer so SetLogger
// may be called while a Make is running. Named "logger" to avoid shadowing
// the stdlib "log" package. Nil means no custom logger has been set.
var logger atomic.Pointer[slog.Logger]

// defaultLogger caches slog.Default() with the localdbenv component attribute.
// A later slog.SetDefault() is not observed until SetLogger(nil) clears the
// cache.
var defaultLogger atomic.Pointer[slog.Logger]

// Logger returns the logger set via SetLogger, or a cached logger derived from
// slog.Default() with the localdbenv component attribute.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := newDefaultLogger()
	if defaultLogger.CompareAndSwap(nil, l) {
		return l
	}
	// Lost the race, or SetLogger cleared the cache in between.
	if l2 := defaultLogger.Load(); l2 != nil {
		return l2
	}
	return l
}

// newDefaultLogger creates the default logger with the localdbenv component attribute.
func newDefaultLogger() *slog.Logger {
	return slog.Default().With("component", "localdbenv")
}

// SetLogger replaces the package-level logger. A nil l restores the default,
// re-derived from slog.Default() on the next Logger() call.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
	defaultLogger.Store(nil)
}
