// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package publish

import (
	"bufio"
	"context"
	"io"
	"os"
)

// StdoutTarget writes each status as a line. It is used when the bar is
// piped into another program instead of shown by the window manager.
type StdoutTarget struct {
	w *bufio.Writer
}

// NewStdout returns a StdoutTarget writing to w, or to os.Stdout if w is nil.
func NewStdout(w io.Writer) *StdoutTarget {
	if w == nil {
		w = os.Stdout
	}

	return &StdoutTarget{w: bufio.NewWriter(w)}
}

// Publish writes status and a newline, and flushes at once.
func (t *StdoutTarget) Publish(_ context.Context, status []byte) error {
	_, _ = t.w.Write(status)
	_ = t.w.WriteByte('\n')

	return t.w.Flush()
}

// Close flushes anything left in the buffer.
func (t *StdoutTarget) Close() error {
	return t.w.Flush()
}
