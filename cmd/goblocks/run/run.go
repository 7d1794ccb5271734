// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run starts the status bar.
package run

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/goblocks/cmd/goblocks/cmdstate"
	"github.com/matt-FFFFFF/goblocks/internal/bar"
	"github.com/matt-FFFFFF/goblocks/internal/bridge"
	"github.com/matt-FFFFFF/goblocks/internal/config"
	"github.com/matt-FFFFFF/goblocks/internal/ctxlog"
	"github.com/matt-FFFFFF/goblocks/internal/executor"
	"github.com/matt-FFFFFF/goblocks/internal/pidfile"
	"github.com/matt-FFFFFF/goblocks/internal/publish"
	"github.com/urfave/cli/v3"
)

const (
	delimiterFlag = "delimiter"
	stdoutFlag    = "stdout"
	displayFlag   = "display"
	logFileFlag   = "log-file"
	journalFlag   = "journal"
	noSocketFlag  = "no-socket"
	cliExitStr    = ""
)

// ErrOpenLogFile is returned when the --log-file destination cannot be opened.
var ErrOpenLogFile = errors.New("failed to open log file")

// Flags are the flags of the status bar itself.
var Flags = []cli.Flag{
	&cli.StringFlag{
		Name:    delimiterFlag,
		Aliases: []string{"d"},
		Usage: fmt.Sprintf("Text placed between blocks, at most %d bytes. Overrides the configuration file.",
			config.MaxDelimiterLen),
		OnlyOnce: true,
	},
	&cli.BoolFlag{
		Name:        stdoutFlag,
		Aliases:     []string{"p"},
		Usage:       "Print the status to stdout instead of setting the X root window name",
		Value:       false,
		DefaultText: "false",
		OnlyOnce:    true,
	},
	&cli.StringFlag{
		Name:     displayFlag,
		Usage:    "X display to use, defaults to $DISPLAY",
		OnlyOnce: true,
	},
	&cli.StringFlag{
		Name:      logFileFlag,
		Usage:     "Also write JSON logs to this file",
		TakesFile: true,
		OnlyOnce:  true,
	},
	&cli.BoolFlag{
		Name:        journalFlag,
		Usage:       "Log to the systemd journal when running as a systemd unit",
		Value:       true,
		DefaultText: "true",
		OnlyOnce:    true,
	},
	&cli.BoolFlag{
		Name:        noSocketFlag,
		Usage:       "Do not open the control socket",
		Value:       false,
		DefaultText: "false",
		OnlyOnce:    true,
	},
}

// Action runs the status bar until the context is cancelled.
func Action(ctx context.Context, cmd *cli.Command) error {
	ctx, closeLog, err := setupLogging(ctx, cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer closeLog()

	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	cfg, err := config.Load(ctx, cmd.String(cmdstate.ConfigFlag))
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	if cmd.IsSet(delimiterFlag) {
		cfg.Delimiter = config.TruncateDelimiter(cmd.String(delimiterFlag))
	}

	shell, err := executor.ResolveShell(cfg.Shell)
	if err != nil {
		logger.Error("failed to resolve shell", "shell", cfg.Shell, "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	target, err := newTarget(cmd)
	if err != nil {
		logger.Error("failed to open display", "error", err)
		return cli.Exit(cliExitStr, 1)
	}
	defer target.Close() //nolint:errcheck

	b, err := bar.New(cfg.Blocks, target,
		bar.WithDelimiter([]byte(cfg.Delimiter)),
		bar.WithCapacity(cfg.SlotCapacity),
		bar.WithShell(shell),
	)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	pidPath := cmdstate.PIDPath(cmd, cfg)
	if err := pidfile.Acquire(pidPath); err != nil {
		logger.Error("failed to write pid file", "path", pidPath, "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	defer func() {
		if err := pidfile.Release(pidPath); err != nil {
			logger.Warn("failed to remove pid file", "path", pidPath, "error", err)
		}
	}()

	listener, err := bridge.ListenSignals(ctx, b.Signals(), b.Events())
	if err != nil {
		logger.Warn("block signals unavailable, use the control socket instead", "error", err)
	} else {
		defer listener.Stop()
	}

	if !cmd.Bool(noSocketFlag) {
		srv := bridge.NewSocketServer(cmdstate.SocketPath(cmd, cfg), b.Events())
		if err := srv.Start(ctx); err != nil {
			logger.Warn("control socket unavailable", "error", err)
		} else {
			defer srv.Stop()
		}
	}

	logger.Info("starting status bar", "config", cfg.Source, "blocks", len(cfg.Blocks), "stdout", cmd.Bool(stdoutFlag))

	return b.Run(ctx)
}

func newTarget(cmd *cli.Command) (publish.Target, error) {
	if cmd.Bool(stdoutFlag) {
		return publish.NewStdout(cmd.Root().Writer), nil
	}

	return publish.NewXRoot(cmd.String(displayFlag))
}

// setupLogging replaces the context logger according to the logging flags.
// Logs always go to stderr since stdout may carry the status.
func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, func(), error) {
	opts := ctxlog.Options{
		Console: os.Stderr,
		Journal: cmd.Bool(journalFlag),
	}

	closer := func() {}

	if path := cmd.String(logFileFlag); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return ctx, closer, errors.Join(ErrOpenLogFile, err)
		}

		opts.File = f
		closer = func() { _ = f.Close() }
	}

	return ctxlog.New(ctx, ctxlog.NewLogger(opts)), closer, nil
}
