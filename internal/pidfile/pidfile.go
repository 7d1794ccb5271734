// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package pidfile records the process ID of a running bar so that the send
// subcommand can signal it.
package pidfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

const fileName = "goblocks.pid"

var (
	// ErrAlreadyRunning is returned when the file names a live process.
	ErrAlreadyRunning = errors.New("goblocks is already running")
	// ErrInvalidPID is returned when the file does not hold a process ID.
	ErrInvalidPID = errors.New("invalid pid file")
)

// DefaultPath returns $XDG_RUNTIME_DIR/goblocks.pid, falling back to the
// temporary directory.
func DefaultPath() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}

	return filepath.Join(dir, fileName)
}

// Acquire writes the current process ID to path. A file left by a process
// that is gone is replaced; one naming a live process is an error.
func Acquire(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create pid directory: %w", err)
	}

	if pid, err := Read(path); err == nil && pid != os.Getpid() && Alive(pid) {
		return fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename pid file: %w", err)
	}

	return nil
}

// Release removes path if it still holds the current process ID.
func Release(path string) error {
	pid, err := Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return err
	}

	if pid != os.Getpid() {
		return nil
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove pid file: %w", err)
	}

	return nil
}

// Read returns the process ID stored in path.
func Read(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read pid file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidPID, path)
	}

	return pid, nil
}

// Alive reports whether a process with the given ID exists.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}

	err := unix.Kill(pid, 0)

	return err == nil || errors.Is(err, unix.EPERM)
}
