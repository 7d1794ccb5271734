// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package block defines the status bar blocks: the commands whose output
// makes up the bar, and when each of them is refreshed.
package block

import (
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

// MaxSignal is the highest signal a block can be bound to. Signals are
// delivered as SIGRTMIN+signal, and Linux offers 30 real-time signals.
const MaxSignal = 30

var (
	// ErrEmptyCommand is returned when a block has no command.
	ErrEmptyCommand = errors.New("block command is empty")
	// ErrSignalOutOfRange is returned when a block signal is above MaxSignal.
	ErrSignalOutOfRange = fmt.Errorf("block signal must be between 0 and %d", MaxSignal)
	// ErrNegativeValue is returned for negative intervals, signals or timeouts.
	ErrNegativeValue = errors.New("block values must not be negative")
	// ErrNoBlocks is returned when a table has no blocks.
	ErrNoBlocks = errors.New("no blocks configured")
)

// Block is one configured command and its refresh policy.
type Block struct {
	Icon     string        // Text written before the command output.
	Command  string        // Shell command line; only the first line of its output is used.
	Interval int           // Seconds between refreshes; 0 refreshes only on signal.
	Signal   int           // Real-time signal offset bound to the block; 0 for none.
	Timeout  time.Duration // Kill the command after this long; 0 waits forever.
}

// Prefix returns the bytes written before the command output: the raw signal
// byte for clickable blocks, then the icon. The signal byte lets the window
// manager map a click position back to the block.
func (b Block) Prefix() []byte {
	if b.Signal == 0 {
		return []byte(b.Icon)
	}

	return append([]byte{byte(b.Signal)}, b.Icon...)
}

// Validate checks a single block.
func (b Block) Validate() error {
	var err error

	if b.Command == "" {
		err = errors.Join(err, ErrEmptyCommand)
	}

	if b.Interval < 0 || b.Signal < 0 || b.Timeout < 0 {
		err = errors.Join(err, ErrNegativeValue)
	}

	if b.Signal > MaxSignal {
		err = errors.Join(err, ErrSignalOutOfRange)
	}

	return err
}

// Table is the ordered set of blocks. Order decides the position of each
// block on the bar and the index of its slot.
type Table []Block

// Validate checks every block and reports all problems at once.
func (t Table) Validate() error {
	if len(t) == 0 {
		return ErrNoBlocks
	}

	var result *multierror.Error

	for i, b := range t {
		if err := b.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("block %d (%q): %w", i, b.Command, err))
		}
	}

	return result.ErrorOrNil()
}

// Signals returns the distinct nonzero signals bound by the table, in table order.
func (t Table) Signals() []int {
	seen := make(map[int]struct{}, len(t))

	var out []int

	for _, b := range t {
		if b.Signal == 0 {
			continue
		}

		if _, ok := seen[b.Signal]; ok {
			continue
		}

		seen[b.Signal] = struct{}{}
		out = append(out, b.Signal)
	}

	return out
}

// BySignal returns the first block bound to signal.
// The boolean is false when no block is bound to it.
func (t Table) BySignal(signal int) (Block, bool) {
	if signal == 0 {
		return Block{}, false
	}

	for _, b := range t {
		if b.Signal == signal {
			return b, true
		}
	}

	return Block{}, false
}
