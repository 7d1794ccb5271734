// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package send delivers refresh and click events to a running bar.
package send

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/matt-FFFFFF/goblocks/cmd/goblocks/cmdstate"
	"github.com/matt-FFFFFF/goblocks/internal/block"
	"github.com/matt-FFFFFF/goblocks/internal/bridge"
	"github.com/matt-FFFFFF/goblocks/internal/config"
	"github.com/matt-FFFFFF/goblocks/internal/ctxlog"
	"github.com/matt-FFFFFF/goblocks/internal/pidfile"
	"github.com/urfave/cli/v3"
	"golang.org/x/sys/unix"
)

const (
	signalArg   = "signal"
	buttonFlag  = "button"
	packedFlag  = "packed"
	timeoutFlag = "timeout"
	maxButton   = 255
	cliExitStr  = ""
)

var (
	// ErrInvalidSignal is returned for a signal argument outside 1 to block.MaxSignal.
	ErrInvalidSignal = fmt.Errorf("signal must be a number between 1 and %d", block.MaxSignal)
	// ErrInvalidButton is returned for a button outside 0 to 255.
	ErrInvalidButton = fmt.Errorf("button must be between 0 and %d", maxButton)
)

// SendCmd is the command that refreshes or clicks a block of a running bar.
var SendCmd = &cli.Command{
	Name:  "send",
	Usage: "Refresh or click the blocks bound to a signal",
	Description: `Send an event to a running goblocks through its control socket.

Without --button the blocks bound to SIGNAL are refreshed. If the control
socket cannot be reached, the real-time signal SIGRTMIN+SIGNAL is sent to the
process named in the PID file instead.

With --button the block bound to SIGNAL is clicked: its command runs in the
background with BUTTON set, then the block is refreshed. With --packed the
button is instead handed to the next run of the block command.

The socket and PID file paths come from --socket and --pid-file, then from
the configuration file, then from the defaults.

Signal payloads are not read. A click script that used sigqueue to send
SIGRTMIN+SIGNAL with a button value, or SIGUSR1 with a packed value, must
call "goblocks send -b BUTTON SIGNAL" (add --packed for the latter) instead.`,
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      signalArg,
			UsageText: "SIGNAL",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
	},
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    buttonFlag,
			Aliases: []string{"b"},
			Usage:   "Mouse button to report, 0 for none",
			Value:   0,
		},
		&cli.BoolFlag{
			Name:        packedFlag,
			Usage:       "Set the button for the next refresh instead of running a click worker",
			Value:       false,
			DefaultText: "false",
		},
		&cli.DurationFlag{
			Name:  timeoutFlag,
			Usage: "How long to wait for the bar to answer",
			Value: 5 * time.Second,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	ev, err := eventFromArgs(cmd.StringArg(signalArg), int(cmd.Int(buttonFlag)), cmd.Bool(packedFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	ctx, cancel := context.WithTimeout(ctx, cmd.Duration(timeoutFlag))
	defer cancel()

	cfg := loadConfig(ctx, cmd)
	socket := cmdstate.SocketPath(cmd, cfg)

	sendErr := bridge.Send(ctx, socket, ev)
	if sendErr == nil {
		logger.Debug("event sent", "socket", socket, "event", ev.String())
		return nil
	}

	if errors.Is(sendErr, bridge.ErrRejected) || ev.Kind != bridge.KindRefresh {
		logger.Error("failed to send event", "socket", socket, "error", sendErr)
		return cli.Exit(cliExitStr, 1)
	}

	logger.Debug("control socket unavailable, falling back to a signal", "error", sendErr)

	if err := signalBar(cmdstate.PIDPath(cmd, cfg), ev.Signal); err != nil {
		logger.Error("failed to signal goblocks", "error", errors.Join(sendErr, err))
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}

// loadConfig returns the configuration for its socket and PID file paths, or
// nil if it cannot be loaded; the flags and defaults still apply then.
func loadConfig(ctx context.Context, cmd *cli.Command) *config.Config {
	cfg, err := config.Load(ctx, cmd.String(cmdstate.ConfigFlag))
	if err != nil {
		ctxlog.Debug(ctx, "configuration not loaded, using default paths", "error", err)
		return nil
	}

	return cfg
}

// eventFromArgs builds the event for the given arguments.
func eventFromArgs(signal string, button int, packed bool) (bridge.Event, error) {
	sig, err := strconv.Atoi(signal)
	if err != nil || sig < 1 || sig > block.MaxSignal {
		return bridge.Event{}, fmt.Errorf("%w: %q", ErrInvalidSignal, signal)
	}

	if button < 0 || button > maxButton {
		return bridge.Event{}, fmt.Errorf("%w: %d", ErrInvalidButton, button)
	}

	ev := bridge.Event{Kind: bridge.KindRefresh, Signal: sig, Button: byte(button)}

	switch {
	case packed:
		ev.Kind = bridge.KindButton
	case button != 0:
		ev.Kind = bridge.KindClick
	}

	return ev, nil
}

// signalBar sends SIGRTMIN+signal to the process in the pid file.
func signalBar(pidPath string, signal int) error {
	pid, err := pidfile.Read(pidPath)
	if err != nil {
		return err
	}

	sig, err := bridge.RTSignal(signal)
	if err != nil {
		return err
	}

	if err := unix.Kill(pid, sig); err != nil {
		return fmt.Errorf("signal pid %d: %w", pid, err)
	}

	return nil
}
