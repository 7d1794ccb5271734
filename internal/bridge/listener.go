// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package bridge

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/matt-FFFFFF/goblocks/internal/ctxlog"
)

// signalQueueSize bounds the signals buffered while the listener forwards one.
// Signals beyond it are dropped, like repeated standard signals are by the kernel.
const signalQueueSize = 32

// ErrNoRealtimeSignal is returned for an offset with no matching real-time signal.
var ErrNoRealtimeSignal = errors.New("no such real-time signal")

// SignalListener forwards real-time signals bound to blocks as refresh events.
//
// It also catches the real-time signals no block is bound to, and SIGUSR1,
// so that a stray signal never terminates the bar.
type SignalListener struct {
	ch     chan os.Signal
	bound  map[int]struct{}
	events chan<- Event
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// ListenSignals starts forwarding SIGRTMIN+n for each n in signals to events.
// Call Stop to release the signals.
func ListenSignals(ctx context.Context, signals []int, events chan<- Event) (*SignalListener, error) {
	l := &SignalListener{
		ch:     make(chan os.Signal, signalQueueSize),
		bound:  make(map[int]struct{}, len(signals)),
		events: events,
	}

	for _, n := range signals {
		if _, err := RTSignal(n); err != nil {
			return nil, err
		}

		l.bound[n] = struct{}{}
	}

	sigs := []os.Signal{syscall.SIGUSR1}
	for _, s := range allRTSignals() {
		sigs = append(sigs, s)
	}

	signal.Notify(l.ch, sigs...)

	ctxlog.Debug(ctx, "listening for block signals", "signals", signals)

	ctx, l.cancel = context.WithCancel(ctx)

	l.wg.Add(1)

	go l.loop(ctx)

	return l, nil
}

// Stop stops delivery and waits for the forwarding goroutine to return.
func (l *SignalListener) Stop() {
	signal.Stop(l.ch)
	l.cancel()
	l.wg.Wait()
}

func (l *SignalListener) loop(ctx context.Context) {
	defer l.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-l.ch:
			l.handle(ctx, sig)
		}
	}
}

func (l *SignalListener) handle(ctx context.Context, sig os.Signal) {
	s, ok := sig.(syscall.Signal)
	if !ok {
		return
	}

	if s == syscall.SIGUSR1 {
		// A packed button value only travels as a signal payload, which is
		// not readable here. The control socket BUTTON verb carries it instead.
		ctxlog.Debug(ctx, "ignoring SIGUSR1 without payload")
		return
	}

	n, ok := rtOffset(s)
	if !ok {
		return
	}

	if _, bound := l.bound[n]; !bound {
		ctxlog.Debug(ctx, "ignoring unbound real-time signal", "signal", n)
		return
	}

	post(ctx, l.events, Event{Kind: KindRefresh, Signal: n})
}
