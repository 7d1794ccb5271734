// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pidfile

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "goblocks.pid")

	require.NoError(t, Acquire(path))

	pid, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)

	require.NoError(t, Acquire(path), "acquiring twice from the same process is allowed")

	require.NoError(t, Release(path))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, Release(path), "releasing a missing file is a no-op")
}

func TestAcquire_LiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goblocks.pid")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getppid())), 0o644))

	err := Acquire(path)
	require.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestAcquire_StaleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goblocks.pid")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	require.NoError(t, Acquire(path))

	pid, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}

func TestRelease_OtherProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goblocks.pid")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getppid())), 0o644))

	require.NoError(t, Release(path))

	_, err := os.Stat(path)
	assert.NoError(t, err, "a file owned by another process is left alone")
}

func TestRead_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goblocks.pid")
	require.NoError(t, os.WriteFile(path, []byte("-3\n"), 0o644))

	_, err := Read(path)
	require.ErrorIs(t, err, ErrInvalidPID)

	_, err = Read(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestAlive(t *testing.T) {
	assert.True(t, Alive(os.Getpid()))
	assert.False(t, Alive(0))
	assert.False(t, Alive(-1))
}
