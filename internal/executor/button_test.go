// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package executor

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingButton(t *testing.T) {
	var p PendingButton

	_, ok := p.Take()
	assert.False(t, ok)

	p.Set(1)
	p.Set(0)

	b, ok := p.Take()
	assert.True(t, ok, "button 0 is a valid pending press")
	assert.Equal(t, byte(0), b, "last write wins")

	_, ok = p.Take()
	assert.False(t, ok)
}

func TestEnviron(t *testing.T) {
	t.Setenv(ButtonEnv, "7")
	t.Setenv("GOBLOCKS_TEST", "yes")

	env := Environ(0, false)
	assert.NotContains(t, env, "BUTTON=7")
	assert.Contains(t, env, "GOBLOCKS_TEST=yes")

	env = Environ(3, true)
	assert.Contains(t, env, "BUTTON=3")
	assert.Equal(t, 1, len(slices.DeleteFunc(slices.Clone(env), func(s string) bool {
		return len(s) < 7 || s[:7] != "BUTTON="
	})))
}

func TestResolveShell(t *testing.T) {
	sh, err := ResolveShell("")
	require.NoError(t, err)
	assert.Equal(t, DefaultShell, sh)

	sh, err = ResolveShell("/bin/bash")
	require.NoError(t, err)
	assert.Equal(t, "/bin/bash", sh)

	sh, err = ResolveShell("sh")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(sh))

	_, err = ResolveShell("definitely-not-a-shell-goblocks")
	require.ErrorIs(t, err, ErrShellNotFound)
}

func TestShellArgs(t *testing.T) {
	assert.Equal(t, []string{"sh", "-c", "date"}, ShellArgs("/bin/sh", "date"))
}
