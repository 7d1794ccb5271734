// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package bridge

import (
	"context"
	"errors"
	"os"
	"sync"
	"syscall"

	"github.com/matt-FFFFFF/goblocks/internal/block"
	"github.com/matt-FFFFFF/goblocks/internal/ctxlog"
	"github.com/matt-FFFFFF/goblocks/internal/executor"
)

// ErrDispatchFailed is returned when a click worker could not be started.
var ErrDispatchFailed = errors.New("could not start click worker")

// Dispatcher starts click workers: the block command, run with BUTTON set in
// a session of its own. When a worker exits, a refresh for its block signal
// is posted so the block shows the result of the click.
type Dispatcher struct {
	shell  string
	events chan<- Event
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDispatcher returns a Dispatcher running workers through shell. Reapers
// stop posting once ctx is done or Close is called.
func NewDispatcher(ctx context.Context, shell string, events chan<- Event) *Dispatcher {
	if shell == "" {
		shell = executor.DefaultShell
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Dispatcher{
		shell:  shell,
		events: events,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Dispatch starts the worker for b and returns without waiting for it.
// The worker output is discarded and its exit status ignored.
func (d *Dispatcher) Dispatch(ctx context.Context, b block.Block, button byte) error {
	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return errors.Join(ErrDispatchFailed, err)
	}
	defer devNull.Close() //nolint:errcheck

	ps, err := os.StartProcess(d.shell, executor.ShellArgs(d.shell, b.Command), &os.ProcAttr{
		Env:   executor.Environ(button, true),
		Files: []*os.File{devNull, devNull, os.Stderr},
		Sys:   &syscall.SysProcAttr{Setsid: true},
	})
	if err != nil {
		return errors.Join(ErrDispatchFailed, err)
	}

	ctxlog.Debug(ctx, "click worker started", "pid", ps.Pid, "signal", b.Signal, "button", button)

	d.wg.Add(1)

	go d.reap(ps, b.Signal)

	return nil
}

func (d *Dispatcher) reap(ps *os.Process, signal int) {
	defer d.wg.Done()

	state, err := ps.Wait()
	if err != nil {
		ctxlog.Debug(d.ctx, "click worker wait failed", "pid", ps.Pid, "error", err)
	} else {
		ctxlog.Debug(d.ctx, "click worker exited", "pid", ps.Pid, "exitCode", state.ExitCode())
	}

	post(d.ctx, d.events, Event{Kind: KindRefresh, Signal: signal})
}

// Close stops pending reapers from posting. It does not wait for workers.
func (d *Dispatcher) Close() {
	d.cancel()
}

// Wait blocks until every started worker has been reaped.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
