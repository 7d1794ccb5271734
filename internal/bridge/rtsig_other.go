// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !linux

package bridge

import (
	"fmt"
	"syscall"
)

// RTSignal always fails: real-time signals are only wired up on Linux. The
// control socket works everywhere.
func RTSignal(n int) (syscall.Signal, error) {
	return 0, fmt.Errorf("%w: %d", ErrNoRealtimeSignal, n)
}

func rtOffset(syscall.Signal) (int, bool) {
	return 0, false
}

func allRTSignals() []syscall.Signal {
	return nil
}
