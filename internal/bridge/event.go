// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package bridge

import (
	"context"
	"fmt"
)

// DefaultQueueSize is the buffer size of the event channel.
const DefaultQueueSize = 64

// Kind is the type of an Event.
type Kind int

const (
	// KindRefresh refreshes the blocks bound to Signal.
	KindRefresh Kind = iota
	// KindClick runs the command of the block bound to Signal as a detached
	// worker with Button set. Button 0 is a plain refresh.
	KindClick
	// KindButton records Button for the next command, then refreshes the
	// blocks bound to Signal.
	KindButton
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindRefresh:
		return "refresh"
	case KindClick:
		return "click"
	case KindButton:
		return "button"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is a request for the status loop.
type Event struct {
	Kind   Kind
	Signal int
	Button byte
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return fmt.Sprintf("%s signal=%d button=%d", e.Kind, e.Signal, e.Button)
}

// Unpack splits a packed button value into its button and signal. The low
// byte is the button, the remaining bits the signal.
func Unpack(packed uint32) (button byte, signal int) {
	return byte(packed & 0xff), int(packed >> 8)
}

// Pack is the inverse of Unpack.
func Pack(button byte, signal int) uint32 {
	return uint32(signal)<<8 | uint32(button) //nolint:gosec
}

// post sends ev on events unless ctx is done first.
func post(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
