// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package executor

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"sync/atomic"
	"syscall"

	"github.com/matt-FFFFFF/goblocks/internal/block"
	"github.com/matt-FFFFFF/goblocks/internal/ctxlog"
	"github.com/matt-FFFFFF/goblocks/internal/slot"
	"golang.org/x/sys/unix"
)

// maxLineSize bounds how much output is read while looking for the first line.
const maxLineSize = 4096

var (
	// ErrCouldNotStartProcess is returned when the command could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToCreatePipe is returned when the output pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrFailedToReadOutput is returned when reading the command output fails.
	ErrFailedToReadOutput = errors.New("failed to read output")
	// ErrTimeoutExceeded is returned when the command ran longer than its block timeout.
	ErrTimeoutExceeded = errors.New("timeout exceeded")
)

// Executor runs block commands. It is not safe for concurrent use; the
// status loop is its only caller.
type Executor struct {
	shell     string
	delimiter []byte
	pending   *PendingButton
}

// New returns an Executor that runs commands with shell and ends every
// rendered slot with delimiter. pending may be nil if button presses are
// never recorded.
func New(shell string, delimiter []byte, pending *PendingButton) *Executor {
	if shell == "" {
		shell = DefaultShell
	}

	if pending == nil {
		pending = &PendingButton{}
	}

	return &Executor{
		shell:     shell,
		delimiter: delimiter,
		pending:   pending,
	}
}

// Pending returns the button press holder consumed by Run.
func (e *Executor) Pending() *PendingButton {
	return e.pending
}

// Run executes the block command and renders its first output line into buf.
//
// A pending button press is handed to this command and cleared, whether or
// not the command starts. The slot keeps its previous content when the
// command cannot be started, times out, or prints nothing.
func (e *Executor) Run(ctx context.Context, b block.Block, buf *slot.Buffer) error {
	logger := ctxlog.Logger(ctx).With("command", b.Command)

	button, pressed := e.pending.Take()
	if pressed {
		logger.Debug("passing button to command", "button", button)
	}

	line, err := e.firstLine(ctx, b, Environ(button, pressed))
	if err != nil {
		return err
	}

	if len(line) == 0 {
		logger.Debug("command printed nothing, keeping previous output")
		return nil
	}

	truncated, err := buf.Render(b.Prefix(), line, e.delimiter)
	if err != nil {
		return err
	}

	if truncated {
		logger.Debug("output truncated", "capacity", buf.Cap())
	}

	return nil
}

func (e *Executor) firstLine(ctx context.Context, b block.Block, env []string) ([]byte, error) {
	logger := ctxlog.Logger(ctx).With("command", b.Command)

	stdin, err := os.Open(os.DevNull)
	if err != nil {
		return nil, errors.Join(ErrCouldNotStartProcess, err)
	}
	defer stdin.Close() //nolint:errcheck

	rOut, wOut, err := os.Pipe()
	if err != nil {
		return nil, errors.Join(ErrFailedToCreatePipe, err)
	}
	defer rOut.Close() //nolint:errcheck

	ps, err := os.StartProcess(e.shell, ShellArgs(e.shell, b.Command), &os.ProcAttr{
		Env:   env,
		Files: []*os.File{stdin, wOut, os.Stderr},
		Sys:   &syscall.SysProcAttr{Setpgid: true},
	})

	_ = wOut.Close()

	if err != nil {
		return nil, errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", ps.Pid)

	var timedOut atomic.Bool

	if b.Timeout > 0 {
		// Shutdown must not interrupt a running command, only its own timeout may.
		tctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.Timeout)
		defer cancel()

		stop := context.AfterFunc(tctx, func() {
			if errors.Is(tctx.Err(), context.DeadlineExceeded) {
				timedOut.Store(true)
				killPs(ctx, ps)
			}
		})
		defer stop()
	}

	line, readErr := readFirstLine(rOut)

	// Closing the read end makes a command that keeps writing exit on SIGPIPE.
	_ = rOut.Close()

	state, waitErr := ps.Wait()
	if waitErr == nil && state.ExitCode() != 0 {
		logger.Debug("command exited with non-zero status", "exitCode", state.ExitCode())
	}

	if timedOut.Load() {
		return nil, ErrTimeoutExceeded
	}

	if readErr != nil {
		return nil, readErr
	}

	return line, nil
}

// readFirstLine returns the first line of r without its line ending, or the
// first maxLineSize bytes if no newline appears before that.
func readFirstLine(r io.Reader) ([]byte, error) {
	line, err := bufio.NewReaderSize(r, maxLineSize).ReadSlice('\n')

	switch {
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, bufio.ErrBufferFull):
	default:
		return nil, errors.Join(ErrFailedToReadOutput, err)
	}

	return bytes.TrimRight(line, "\r\n"), nil
}

// killPs kills the process group of ps, taking down any pipeline the shell started.
func killPs(ctx context.Context, ps *os.Process) {
	if err := unix.Kill(-ps.Pid, unix.SIGKILL); err != nil {
		if errors.Is(err, unix.ESRCH) {
			ctxlog.Debug(ctx, "process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Error(ctx, "process kill error", "pid", ps.Pid, "error", err)

		return
	}

	ctxlog.Warn(ctx, "process killed after timeout", "pid", ps.Pid)
}
