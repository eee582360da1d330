// Package tlog wires structured logging for thermview. The teacher prints
// straight to stdout/stderr with fmt.Println/fmt.Fprintf (pkg/cli/cli.go);
// thermview is a batch CLI meant to run unattended against camera exports,
// so call sites use log/slog instead, optionally rotated to disk through
// lumberjack.v2 the way github.com/jpfielding/dicos.go's ctl command does.
package tlog

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures where logs go and at what level.
type Options struct {
	FilePath   string // empty means stderr only
	MaxSizeMB  int    // lumberjack MaxSize, defaults to 10
	MaxBackups int    // lumberjack MaxBackups, defaults to 3
	Debug      bool
}

// New builds a *slog.Logger writing text lines to stderr, or to a rotating
// file when opts.FilePath is set.
func New(opts Options) *slog.Logger {
	var w io.Writer = os.Stderr
	if opts.FilePath != "" {
		maxSize := opts.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 10
		}
		maxBackups := opts.MaxBackups
		if maxBackups <= 0 {
			maxBackups = 3
		}
		w = &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			Compress:   true,
		}
	}
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// WithSource returns a logger pre-populated with a "source" field, mirroring
// therr.Source tagging so a log line and an error frame read the same way.
func WithSource(l *slog.Logger, source string) *slog.Logger {
	return l.With("source", source)
}
