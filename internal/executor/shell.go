// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package executor

import (
	"errors"
	"os/exec"
	"path/filepath"
)

const (
	// DefaultShell runs block commands when no shell is configured.
	DefaultShell  = "/bin/sh"
	commandSwitch = "-c"
)

// ErrShellNotFound is returned when the configured shell cannot be located.
var ErrShellNotFound = errors.New("shell not found")

// ResolveShell returns the absolute path of the shell used to run commands.
// An empty name selects DefaultShell; a bare name is searched in PATH.
func ResolveShell(name string) (string, error) {
	if name == "" {
		return DefaultShell, nil
	}

	if filepath.IsAbs(name) {
		return name, nil
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", errors.Join(ErrShellNotFound, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Join(ErrShellNotFound, err)
	}

	return abs, nil
}

// ShellArgs returns the argument vector that runs command through shell.
func ShellArgs(shell, command string) []string {
	return []string{filepath.Base(shell), commandSwitch, command}
}
