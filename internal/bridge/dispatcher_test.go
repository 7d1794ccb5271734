// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package bridge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matt-FFFFFF/goblocks/internal/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_Dispatch(t *testing.T) {
	ctx := testContext(t)
	events := make(chan Event, DefaultQueueSize)
	out := filepath.Join(t.TempDir(), "button")

	d := NewDispatcher(ctx, "", events)
	defer d.Close()

	b := block.Block{Command: `printf '%s' "$BUTTON" > ` + out, Signal: 6}
	require.NoError(t, d.Dispatch(ctx, b, 3))

	assert.Equal(t, Event{Kind: KindRefresh, Signal: 6}, receive(t, events))
	d.Wait()

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "3", string(got))
}

func TestDispatcher_FailingCommandStillRefreshes(t *testing.T) {
	ctx := testContext(t)
	events := make(chan Event, DefaultQueueSize)

	d := NewDispatcher(ctx, "", events)
	defer d.Close()

	require.NoError(t, d.Dispatch(ctx, block.Block{Command: "exit 4", Signal: 2}, 1))
	assert.Equal(t, Event{Kind: KindRefresh, Signal: 2}, receive(t, events))
	d.Wait()
}

func TestDispatcher_BadShell(t *testing.T) {
	ctx := testContext(t)
	d := NewDispatcher(ctx, "/not/a/shell", make(chan Event, 1))
	defer d.Close()

	err := d.Dispatch(ctx, block.Block{Command: "true", Signal: 1}, 1)
	require.ErrorIs(t, err, ErrDispatchFailed)
}

func TestDispatcher_CloseUnblocksReaper(t *testing.T) {
	ctx := testContext(t)
	events := make(chan Event)

	d := NewDispatcher(ctx, "", events)
	require.NoError(t, d.Dispatch(ctx, block.Block{Command: "true", Signal: 1}, 1))

	d.Close()
	d.Wait()
}
