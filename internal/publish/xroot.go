// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package publish

import (
	"context"
	"errors"
	"math"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	// ErrOpenDisplay is returned when the X display cannot be opened.
	ErrOpenDisplay = errors.New("cannot open display")
	// ErrStatusTooLong is returned for text that does not fit an X property request.
	ErrStatusTooLong = errors.New("status too long")
)

// XRootTarget sets WM_NAME on the root window of the default screen.
type XRootTarget struct {
	conn *xgb.Conn
	root xproto.Window
}

// NewXRoot connects to display, or to $DISPLAY when display is empty.
func NewXRoot(display string) (*XRootTarget, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, errors.Join(ErrOpenDisplay, err)
	}

	screen := xproto.Setup(conn).DefaultScreen(conn)

	return &XRootTarget{
		conn: conn,
		root: screen.Root,
	}, nil
}

// Publish stores status as the root window name and waits for the server to
// acknowledge it.
func (t *XRootTarget) Publish(_ context.Context, status []byte) error {
	if uint64(len(status)) > math.MaxUint32 {
		return ErrStatusTooLong
	}

	return xproto.ChangePropertyChecked(
		t.conn,
		xproto.PropModeReplace,
		t.root,
		xproto.AtomWmName,
		xproto.AtomString,
		8,
		uint32(len(status)),
		status,
	).Check()
}

// Close closes the display connection.
func (t *XRootTarget) Close() error {
	t.conn.Close()
	return nil
}
