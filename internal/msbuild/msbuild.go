// Package msbuild invokes the MSBuild command line to build and publish
// database projects.
package msbuild

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// DefaultExecutable is the MSBuild binary resolved through PATH when
// Builder.Executable is empty.
const DefaultExecutable = "msbuild"

// Request describes one MSBuild invocation.
type Request struct {
	ProjectPath string
	Targets     []string
	Properties  map[string]string
	// LogFile, when set, receives a file logger's output.
	LogFile string
}

// Runner runs a command and returns its exit code. process.Runner satisfies
// this interface.
type Runner interface {
	Run(ctx context.Context, path string, args ...string) (int, error)
}

// Builder runs MSBuild through a Runner.
type Builder struct {
	Executable string
	Runner     Runner
	// Logger is resolved on every Build; nil uses slog.Default().
	Logger func() *slog.Logger
}

// Build runs MSBuild for req and reports whether it exited successfully.
// err is reserved for failures to run MSBuild at all.
func (b Builder) Build(ctx context.Context, req Request) (bool, error) {
	if b.Runner == nil {
		return false, errors.New("msbuild: runner must not be nil")
	}
	if strings.TrimSpace(req.ProjectPath) == "" {
		return false, errors.New("msbuild: project path must not be empty")
	}
	exe := b.Executable
	if exe == "" {
		exe = DefaultExecutable
	}
	log := slog.Default()
	if b.Logger != nil {
		if l := b.Logger(); l != nil {
			log = l
		}
	}

	args := Args(req)
	log.Info("running msbuild", "project", req.ProjectPath, "targets", req.Targets, "log_file", req.LogFile)

	code, err := b.Runner.Run(ctx, exe, args...)
	if err != nil {
		return false, fmt.Errorf("run msbuild: %w", err)
	}
	return code == 0, nil
}

// Args returns the MSBuild command-line arguments for req. Properties are
// emitted in key order.
func Args(req Request) []string {
	args := []string{req.ProjectPath, "-nologo"}
	if len(req.Targets) > 0 {
		args = append(args, "-t:"+strings.Join(req.Targets, ";"))
	}
	for _, k := range slices.Sorted(maps.Keys(req.Properties)) {
		args = append(args, "-p:"+k+"="+EscapeProperty(req.Properties[k]))
	}
	if req.LogFile != "" {
		args = append(args, "-flp:logfile="+req.LogFile+";verbosity=normal")
	}
	return args
}

// EscapeProperty escapes characters MSBuild treats specially in a -p value.
// Connection strings contain semicolons, which would otherwise split the
// value into several properties.
func EscapeProperty(v string) string {
	return strings.NewReplacer("%", "%25", ";", "%3B").Replace(v)
}
