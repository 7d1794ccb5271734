// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package send

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matt-FFFFFF/goblocks/cmd/goblocks/cmdstate"
	"github.com/matt-FFFFFF/goblocks/internal/bridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestEventFromArgs(t *testing.T) {
	testCases := []struct {
		name    string
		signal  string
		button  int
		packed  bool
		want    bridge.Event
		wantErr error
	}{
		{name: "refresh", signal: "5", want: bridge.Event{Kind: bridge.KindRefresh, Signal: 5}},
		{name: "click", signal: "5", button: 1, want: bridge.Event{Kind: bridge.KindClick, Signal: 5, Button: 1}},
		{name: "packed", signal: "2", button: 3, packed: true, want: bridge.Event{Kind: bridge.KindButton, Signal: 2, Button: 3}},
		{name: "missing signal", signal: "", wantErr: ErrInvalidSignal},
		{name: "signal zero", signal: "0", wantErr: ErrInvalidSignal},
		{name: "signal too large", signal: "31", wantErr: ErrInvalidSignal},
		{name: "negative button", signal: "1", button: -1, wantErr: ErrInvalidButton},
		{name: "button too large", signal: "1", button: 256, wantErr: ErrInvalidButton},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := eventFromArgs(tc.signal, tc.button, tc.packed)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSignalBar_NoPIDFile(t *testing.T) {
	err := signalBar(filepath.Join(t.TempDir(), "missing.pid"), 1)
	require.Error(t, err)
}

func TestSendCmd_SocketFromConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", filepath.Join(dir, "nowhere"))

	socket := filepath.Join(dir, "custom.sock")
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("socket: "+socket+"\n"), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	events := make(chan bridge.Event, bridge.DefaultQueueSize)
	srv := bridge.NewSocketServer(socket, events)
	require.NoError(t, srv.Start(ctx))

	defer srv.Stop()

	var exitErr error

	root := &cli.Command{
		Name:      "goblocks",
		Flags:     cmdstate.Flags,
		Commands:  []*cli.Command{SendCmd},
		Writer:    io.Discard,
		ErrWriter: io.Discard,
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			exitErr = err
		},
	}

	err := root.Run(ctx, []string{"goblocks", "-c", cfgPath, "send", "-b", "1", "3"})
	require.NoError(t, err)
	require.NoError(t, exitErr)

	select {
	case ev := <-events:
		assert.Equal(t, bridge.Event{Kind: bridge.KindClick, Signal: 3, Button: 1}, ev)
	case <-time.After(2 * time.Second):
		assert.Fail(t, "the click was not delivered to the socket named in the configuration")
	}
}

func TestSendCmd_DescribesSigqueueMigration(t *testing.T) {
	assert.Contains(t, SendCmd.Description, "sigqueue")
	assert.Contains(t, SendCmd.Description, `goblocks send -b BUTTON SIGNAL`)
	assert.Contains(t, SendCmd.Description, "--packed")
}
