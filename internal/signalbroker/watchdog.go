// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/goblocks/internal/ctxlog"
)

// ForcedExitCode is the exit code used when a second signal forces termination.
const ForcedExitCode = 130

var exitFunc = os.Exit

// Watch cancels the context on the first signal received on sigCh and exits
// the process on the second signal of the same type. It returns when sigCh is
// closed or the process is forced to exit.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for sig := range sigCh {
		if _, ok := seen[sig]; ok {
			ctxlog.Logger(ctx).Warn("watchdog", "detail", "received second signal of type, forcefully terminating", "signal", sig.String())
			exitFunc(ForcedExitCode)

			return
		}

		ctxlog.Logger(ctx).Info("watchdog", "detail", "received signal, stopping after the current tick", "signal", sig.String())

		seen[sig] = struct{}{}

		cancel()
	}
}
