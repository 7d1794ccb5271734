// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package bar runs the status loop: it refreshes blocks on ticks and events,
// and publishes the status text when it changes.
//
// The loop goroutine owns every slot, the publisher state and the pending
// button. Other goroutines only reach it through the event channel.
package bar

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/matt-FFFFFF/goblocks/internal/block"
	"github.com/matt-FFFFFF/goblocks/internal/bridge"
	"github.com/matt-FFFFFF/goblocks/internal/ctxlog"
	"github.com/matt-FFFFFF/goblocks/internal/executor"
	"github.com/matt-FFFFFF/goblocks/internal/publish"
	"github.com/matt-FFFFFF/goblocks/internal/scheduler"
	"github.com/matt-FFFFFF/goblocks/internal/slot"
)

// DefaultTick is the time between two scheduler ticks.
const DefaultTick = time.Second

// ErrNilTarget is returned by New without a publish target.
var ErrNilTarget = errors.New("publish target is nil")

// Bar is a status bar: its blocks, their slots and where the text goes.
type Bar struct {
	table    block.Table
	slots    *slot.Slots
	sched    *scheduler.Scheduler
	exec     *executor.Executor
	pub      *publish.Publisher
	events   chan bridge.Event
	shell    string
	tick     time.Duration
	capacity int
	delim    []byte
}

// Option configures a Bar.
type Option func(*Bar)

// WithDelimiter sets the text placed between two blocks.
func WithDelimiter(delim []byte) Option {
	return func(b *Bar) {
		b.delim = delim
	}
}

// WithCapacity sets the size in bytes of every slot.
func WithCapacity(capacity int) Option {
	return func(b *Bar) {
		b.capacity = capacity
	}
}

// WithShell sets the shell that runs block commands.
func WithShell(shell string) Option {
	return func(b *Bar) {
		b.shell = shell
	}
}

// WithTick sets the time between two scheduler ticks.
func WithTick(d time.Duration) Option {
	return func(b *Bar) {
		if d > 0 {
			b.tick = d
		}
	}
}

// New validates table and returns a Bar publishing to target.
func New(table block.Table, target publish.Target, opts ...Option) (*Bar, error) {
	if target == nil {
		return nil, ErrNilTarget
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}

	b := &Bar{
		table:    table,
		sched:    scheduler.New(table),
		events:   make(chan bridge.Event, bridge.DefaultQueueSize),
		shell:    executor.DefaultShell,
		tick:     DefaultTick,
		capacity: slot.DefaultCapacity,
		delim:    []byte(block.DefaultDelimiter),
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.capacity <= len(b.delim) {
		return nil, slot.ErrCapacityTooSmall
	}

	b.slots = slot.New(len(table), b.capacity)
	b.exec = executor.New(b.shell, b.delim, nil)
	b.pub = publish.New(target, b.delim, b.slots.MaxLen())

	return b, nil
}

// Events returns the channel that asynchronous producers post to.
func (b *Bar) Events() chan<- bridge.Event {
	return b.events
}

// Signals returns the block signals that should be listened for.
func (b *Bar) Signals() []int {
	return b.table.Signals()
}

// Run refreshes every block, then loops until ctx is done: refresh the blocks
// due at this tick, publish, wait for the next tick while serving events.
// Cancelling ctx never interrupts a running command; the loop stops at the
// end of the iteration in progress.
func (b *Bar) Run(ctx context.Context) error {
	ctxlog.Info(ctx, "status loop started", "blocks", len(b.table), "tick", b.tick)

	dispatcher := bridge.NewDispatcher(ctx, b.shell, b.events)
	defer dispatcher.Close()

	ticker := time.NewTicker(b.tick)
	defer ticker.Stop()

	b.refresh(ctx, b.sched.Due(scheduler.ForceAll))

	for t := 0; ; t++ {
		b.refresh(ctx, b.sched.Due(t))
		b.publish(ctx)

		if ctx.Err() != nil {
			ctxlog.Info(ctx, "status loop stopped")
			return nil
		}

		b.wait(ctx, ticker.C, dispatcher)
	}
}

// wait serves events until the next tick or until ctx is done.
func (b *Bar) wait(ctx context.Context, tick <-chan time.Time, dispatcher *bridge.Dispatcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			return
		case ev := <-b.events:
			b.handle(ctx, dispatcher, ev)
		}
	}
}

func (b *Bar) handle(ctx context.Context, dispatcher *bridge.Dispatcher, ev bridge.Event) {
	ctxlog.Debug(ctx, "event received", "event", ev.String())

	switch ev.Kind {
	case bridge.KindClick:
		if ev.Button != 0 {
			b.click(ctx, dispatcher, ev)
			return
		}
	case bridge.KindButton:
		b.exec.Pending().Set(ev.Button)
	}

	b.refresh(ctx, b.sched.Bound(ev.Signal))
	b.publish(ctx)
}

func (b *Bar) click(ctx context.Context, dispatcher *bridge.Dispatcher, ev bridge.Event) {
	blk, ok := b.table.BySignal(ev.Signal)
	if !ok {
		ctxlog.Debug(ctx, "no block bound to clicked signal", "signal", ev.Signal)
		return
	}

	if err := dispatcher.Dispatch(ctx, blk, ev.Button); err != nil {
		ctxlog.Warn(ctx, "click worker failed", "signal", ev.Signal, "error", err)
	}
}

func (b *Bar) refresh(ctx context.Context, indexes iter.Seq[int]) {
	for i := range indexes {
		if err := b.exec.Run(ctx, b.table[i], b.slots.At(i)); err != nil {
			ctxlog.Warn(ctx, "block refresh failed", "block", i, "command", b.table[i].Command, "error", err)
		}
	}
}

func (b *Bar) publish(ctx context.Context) {
	if _, err := b.pub.Publish(ctx, b.slots); err != nil {
		ctxlog.Warn(ctx, "publish failed", "error", err)
	}
}
