// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the goblocks command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/matt-FFFFFF/goblocks"
	"github.com/matt-FFFFFF/goblocks/cmd/goblocks/cmdstate"
	"github.com/matt-FFFFFF/goblocks/cmd/goblocks/config"
	"github.com/matt-FFFFFF/goblocks/cmd/goblocks/run"
	"github.com/matt-FFFFFF/goblocks/cmd/goblocks/send"
	"github.com/matt-FFFFFF/goblocks/internal/ctxlog"
	"github.com/matt-FFFFFF/goblocks/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		config.ConfigCmd,
		send.SendCmd,
	},
	Flags:     slices.Concat(cmdstate.Flags, run.Flags),
	Action:    run.Action,
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "goblocks",
	Description: `goblocks builds a status bar from the output of shell commands.
Each block runs its command every few seconds, on a real-time signal, or when
asked through the control socket. The first line of output of every block is
joined into one line and set as the X root window name, where dwm shows it,
or printed to stdout with -p.`,
	Usage:     "goblocks [-d DELIMITER] [-p]",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", goblocks.Version, goblocks.Commit)

	err := rootCmd.Run(ctx, os.Args) // Err is handled by cli framework

	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}

	// A termination signal is the normal way to stop the bar.
	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Info("stopped by signal")
	}
}
