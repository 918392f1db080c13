// Package cli implements the depindex command-line interface.
//
// This package wires the resolver, indexer and pipeline packages into cobra
// commands. Flags are bound to viper so that every setting can also come
// from a DEPINDEX_* environment variable or a --config file.
//
// # Commands
//
// The main commands are:
//   - index: Resolve a project's dependencies and index them with zoekt-index
//   - resolve: Print the site-packages directories of distribution names
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context; status lines go to stdout, logs to stderr.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. Messages go to w, filtered at level, with
// an "HH:MM:SS.ms" timestamp and the application name as prefix.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          appName,
	})
}

// progress times one stage of a command (locating, resolving, indexing).
type progress struct {
	logger *log.Logger
	stage  string
	start  time.Time
}

// newProgress starts timing stage.
func newProgress(l *log.Logger, stage string) *progress {
	return &progress{logger: l, stage: stage, start: time.Now()}
}

// done logs the formatted message at info level with the stage name and the
// elapsed time, e.g. "Resolved 3 of 4 names stage=resolve elapsed=12ms".
func (p *progress) done(format string, args ...any) {
	p.logger.Info(fmt.Sprintf(format, args...),
		"stage", p.stage,
		"elapsed", time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

// withLogger returns a copy of ctx carrying l. The root command attaches
// the CLI logger this way before any subcommand runs.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when a command runs without the root pre-run.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
