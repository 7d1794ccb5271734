// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package executor

import (
	"os"
	"strings"
	"sync/atomic"
)

// ButtonEnv is the environment variable that tells a command which mouse button was pressed.
const ButtonEnv = "BUTTON"

const pendingFlag = 1 << 8

// PendingButton holds at most one button press waiting for the next command.
// A newer press replaces an older one. The zero value holds no press.
type PendingButton struct {
	v atomic.Uint32
}

// Set records a button press, replacing any pending one.
func (p *PendingButton) Set(button byte) {
	p.v.Store(pendingFlag | uint32(button))
}

// Take returns and clears the pending press. ok is false when none was pending.
func (p *PendingButton) Take() (button byte, ok bool) {
	v := p.v.Swap(0)

	return byte(v), v&pendingFlag != 0
}

// Environ returns the process environment with BUTTON set to the ASCII digit
// form of button when pressed is true, and with any inherited BUTTON removed
// otherwise.
func Environ(button byte, pressed bool) []string {
	prefix := ButtonEnv + "="

	env := os.Environ()
	out := env[:0]

	for _, kv := range env {
		if !strings.HasPrefix(kv, prefix) {
			out = append(out, kv)
		}
	}

	if pressed {
		out = append(out, prefix+string([]byte{'0' + button}))
	}

	return out
}
