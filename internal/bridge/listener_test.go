// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build linux

package bridge

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestRTSignal(t *testing.T) {
	sig, err := RTSignal(0)
	require.NoError(t, err)
	assert.Equal(t, syscall.Signal(34), sig)

	sig, err = RTSignal(30)
	require.NoError(t, err)
	assert.Equal(t, syscall.Signal(64), sig)

	_, err = RTSignal(31)
	require.ErrorIs(t, err, ErrNoRealtimeSignal)

	n, ok := rtOffset(syscall.Signal(39))
	assert.True(t, ok)
	assert.Equal(t, 5, n)

	_, ok = rtOffset(syscall.SIGUSR1)
	assert.False(t, ok)
}

func kill(t *testing.T, n int) {
	t.Helper()

	sig, err := RTSignal(n)
	require.NoError(t, err)
	require.NoError(t, unix.Kill(os.Getpid(), sig))
}

func TestSignalListener(t *testing.T) {
	events := make(chan Event, DefaultQueueSize)

	l, err := ListenSignals(testContext(t), []int{5, 7}, events)
	require.NoError(t, err)

	defer l.Stop()

	kill(t, 5)
	assert.Equal(t, Event{Kind: KindRefresh, Signal: 5}, receive(t, events))

	kill(t, 7)
	assert.Equal(t, Event{Kind: KindRefresh, Signal: 7}, receive(t, events))

	// Neither of these may terminate the test binary.
	kill(t, 9)
	require.NoError(t, unix.Kill(os.Getpid(), unix.SIGUSR1))
	assertNoEvent(t, events, 200*time.Millisecond)
}

func TestListenSignals_OutOfRange(t *testing.T) {
	_, err := ListenSignals(testContext(t), []int{40}, make(chan Event))
	require.ErrorIs(t, err, ErrNoRealtimeSignal)
}
