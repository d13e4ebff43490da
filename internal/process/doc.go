// Package process runs and inspects external processes for localdbenv.
//
// Runner spawns a command, waits for it and reports its exit code, writing
// stdout/stderr to per-invocation log files when a log directory is set.
// Table enumerates and kills OS processes, resolving executable paths so
// callers can match on where a binary lives rather than what it is called.
// WaitReady retries a readiness probe until it succeeds or times out.
package process
