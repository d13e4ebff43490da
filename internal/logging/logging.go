// Package logging builds the slog logger used by the localdbenv CLI.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/giantswarm/localdbenv/internal/config"
	"github.com/giantswarm/localdbenv/internal/fileutil"
)

// New returns a logger for cfg and a closer for its output. With cfg.File set
// it writes JSON records to a rotating file; otherwise it writes text records
// to stderr. debug lowers the level from Info to Debug.
func New(cfg config.LogConfig, debug bool) (*slog.Logger, io.Closer, error) {
	return newLogger(cfg, debug, os.Stderr)
}

func newLogger(cfg config.LogConfig, debug bool, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: Level(debug)}

	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(stderr, opts)), nopCloser{}, nil
	}

	if err := fileutil.EnsureDirForFile(cfg.File); err != nil {
		return nil, nil, err
	}
	w := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	return slog.New(slog.NewJSONHandler(w, opts)), w, nil
}

// Level maps the debug switch to a slog level.
func Level(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
