// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build linux

package bridge

import (
	"fmt"
	"syscall"
)

// The C library reserves the first two real-time signals, so SIGRTMIN as seen
// by other programs is 34.
const (
	sigRTMin = 34
	sigRTMax = 64
)

// RTSignal returns SIGRTMIN+n.
func RTSignal(n int) (syscall.Signal, error) {
	if n < 0 || sigRTMin+n > sigRTMax {
		return 0, fmt.Errorf("%w: %d", ErrNoRealtimeSignal, n)
	}

	return syscall.Signal(sigRTMin + n), nil
}

// rtOffset is the inverse of RTSignal.
func rtOffset(sig syscall.Signal) (int, bool) {
	if sig < sigRTMin || sig > sigRTMax {
		return 0, false
	}

	return int(sig) - sigRTMin, true
}

// allRTSignals returns every real-time signal.
func allRTSignals() []syscall.Signal {
	sigs := make([]syscall.Signal, 0, sigRTMax-sigRTMin+1)
	for s := sigRTMin; s <= sigRTMax; s++ {
		sigs = append(sigs, syscall.Signal(s))
	}

	return sigs
}
