// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package scheduler decides which blocks are refreshed on a tick or on a signal.
package scheduler

import (
	"iter"

	"github.com/matt-FFFFFF/goblocks/internal/block"
)

// ForceAll is the tick value that selects every block, regardless of interval.
const ForceAll = -1

// Scheduler selects block indexes from a table. It holds no state of its own.
type Scheduler struct {
	table block.Table
}

// New returns a Scheduler for table.
func New(table block.Table) *Scheduler {
	return &Scheduler{table: table}
}

// Due yields, in table order, the indexes of the blocks to refresh at tick t.
// Blocks with a zero interval are only refreshed by ForceAll or a signal.
func (s *Scheduler) Due(t int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, b := range s.table {
			if !due(b, t) {
				continue
			}

			if !yield(i) {
				return
			}
		}
	}
}

// Bound yields, in table order, the indexes of the blocks bound to signal.
// Signal 0 means unbound and selects nothing.
func (s *Scheduler) Bound(signal int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if signal == 0 {
			return
		}

		for i, b := range s.table {
			if b.Signal != signal {
				continue
			}

			if !yield(i) {
				return
			}
		}
	}
}

func due(b block.Block, t int) bool {
	if t == ForceAll {
		return true
	}

	return b.Interval > 0 && t >= 0 && t%b.Interval == 0
}
