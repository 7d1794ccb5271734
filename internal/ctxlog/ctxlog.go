// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

type loggerKey struct{}

// journalStreamEnv is set by systemd for units whose stderr is connected to the journal.
const journalStreamEnv = "JOURNAL_STREAM"

// LevelVar controls the level of every logger built by this package.
var LevelVar = &slog.LevelVar{}

// DefaultLogger is used when the context carries no logger.
var DefaultLogger = slog.New(NewPrettyHandler(os.Stderr, &slog.HandlerOptions{Level: LevelVar}, WithAutoColour()))

func init() {
	exe, _ := os.Executable()
	LevelVar.Set(levelFromEnv(os.Getenv, exe))
}

// Options selects the destinations of a logger built by NewLogger.
type Options struct {
	// Console receives pretty output when not running under systemd.
	Console io.Writer
	// File, if set, receives one JSON object per record.
	File io.Writer
	// Journal sends records to the systemd journal when the process runs as a unit.
	Journal bool
}

// NewLogger builds a logger writing to the destinations in opts.
// A journal that cannot be opened falls back to the console.
func NewLogger(opts Options) *slog.Logger {
	var handlers []slog.Handler

	if opts.Journal && os.Getenv(journalStreamEnv) != "" {
		if h, err := slogjournal.NewHandler(&slogjournal.Options{
			Level:        LevelVar,
			ReplaceGroup: journalKey,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				a.Key = journalKey(a.Key)
				return a
			},
		}); err == nil {
			handlers = append(handlers, h)
		}
	}

	if len(handlers) == 0 && opts.Console != nil {
		handlers = append(handlers, NewPrettyHandler(opts.Console, &slog.HandlerOptions{Level: LevelVar}, WithAutoColour()))
	}

	if opts.File != nil {
		handlers = append(handlers, slog.NewJSONHandler(opts.File, &slog.HandlerOptions{Level: LevelVar}))
	}

	switch len(handlers) {
	case 0:
		return DefaultLogger
	case 1:
		return slog.New(handlers[0])
	default:
		return slog.New(slogmulti.Fanout(handlers...))
	}
}

// New returns a copy of ctx carrying logger, or DefaultLogger if logger is nil.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger from the context, or the default logger if not found.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// Info logs an info message with the given context.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).InfoContext(ctx, msg, args...)
}

// Debug logs a debug message with the given context.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).DebugContext(ctx, msg, args...)
}

// Warn logs a warning message with the given context.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).WarnContext(ctx, msg, args...)
}

// Error logs an error message with the given context.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).ErrorContext(ctx, msg, args...)
}

// levelFromEnv reads <EXECUTABLE>_LOG_LEVEL, e.g. GOBLOCKS_LOG_LEVEL.
// Unknown or empty values select WARN.
func levelFromEnv(getenv func(string) string, exe string) slog.Level {
	name := filepath.Base(exe)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(name))

	switch strings.ToUpper(getenv(name + "_LOG_LEVEL")) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// journalKey maps an attribute key to a valid journal field name.
func journalKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		default:
			return '_'
		}
	}, key)
}
