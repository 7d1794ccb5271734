// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/matt-FFFFFF/goblocks/internal/block"
	"github.com/matt-FFFFFF/goblocks/internal/slot"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
delimiter: " :: "
slot_capacity: 64
socket: /run/bar.sock
blocks:
  - icon: "Vol: "
    command: pamixer --get-volume
    signal: 10
  - command: date '+%H:%M'
    interval: 5
    timeout: 2s
`

const tomlConfig = `
delimiter = ""
shell = "bash"

[[blocks]]
icon = "Mem: "
command = "free -h"
interval = 30

[[blocks]]
command = "battery"
signal = 3
`

const hclConfig = `
delimiter = "|"
pid_file  = "/run/goblocks.pid"

block {
  icon    = "H: "
  command = "echo ${env("GOBLOCKS_TEST_HOST")}"
  signal  = 1
}

block {
  command  = "uptime"
  interval = 60
  timeout  = "500ms"
}
`

func stubConfigDir(t *testing.T, files map[string]string) {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join("/home/user/.config/goblocks", name), []byte(content), 0o644))
	}

	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	stubs.Stub(&userConfigDir, func() (string, error) { return "/home/user/.config", nil })
	t.Cleanup(stubs.Reset)
}

func TestLoad_YAML(t *testing.T) {
	stubConfigDir(t, map[string]string{"config.yaml": yamlConfig})

	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, " :: ", cfg.Delimiter)
	assert.Equal(t, 64, cfg.SlotCapacity)
	assert.Equal(t, "/run/bar.sock", cfg.Socket)
	assert.Equal(t, "/home/user/.config/goblocks/config.yaml", cfg.Source)
	assert.Equal(t, block.Table{
		{Icon: "Vol: ", Command: "pamixer --get-volume", Signal: 10},
		{Command: "date '+%H:%M'", Interval: 5, Timeout: 2 * time.Second},
	}, cfg.Blocks)
}

func TestLoad_TOML(t *testing.T) {
	stubConfigDir(t, map[string]string{"config.toml": tomlConfig})

	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)

	assert.Empty(t, cfg.Delimiter, "an explicit empty delimiter is kept")
	assert.Equal(t, "bash", cfg.Shell)
	assert.Equal(t, slot.DefaultCapacity, cfg.SlotCapacity)
	assert.Equal(t, block.Table{
		{Icon: "Mem: ", Command: "free -h", Interval: 30},
		{Command: "battery", Signal: 3},
	}, cfg.Blocks)
}

func TestLoad_HCL(t *testing.T) {
	t.Setenv("GOBLOCKS_TEST_HOST", "box")
	stubConfigDir(t, map[string]string{"config.hcl": hclConfig})

	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "|", cfg.Delimiter)
	assert.Equal(t, "/run/goblocks.pid", cfg.PIDFile)
	assert.Equal(t, block.Table{
		{Icon: "H: ", Command: "echo box", Signal: 1},
		{Command: "uptime", Interval: 60, Timeout: 500 * time.Millisecond},
	}, cfg.Blocks)
}

func TestLoad_SearchOrder(t *testing.T) {
	stubConfigDir(t, map[string]string{
		"config.toml": tomlConfig,
		"config.yml":  yamlConfig,
	})

	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.config/goblocks/config.yml", cfg.Source)
}

func TestLoad_Defaults(t *testing.T) {
	stubConfigDir(t, nil)

	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Empty(t, cfg.Source)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{
			name:    "unknown yaml key",
			file:    "config.yaml",
			content: "blocks:\n  - command: date\n    colour: red\n",
			wantErr: ErrParseConfig,
		},
		{
			name:    "unknown toml key",
			file:    "config.toml",
			content: "colour = \"red\"\n",
			wantErr: ErrParseConfig,
		},
		{
			name:    "hcl syntax error",
			file:    "config.hcl",
			content: "block {\n",
			wantErr: ErrParseConfig,
		},
		{
			name:    "empty command",
			file:    "config.yaml",
			content: "blocks:\n  - icon: x\n",
			wantErr: block.ErrEmptyCommand,
		},
		{
			name:    "signal out of range",
			file:    "config.yaml",
			content: "blocks:\n  - command: date\n    signal: 31\n",
			wantErr: block.ErrSignalOutOfRange,
		},
		{
			name:    "bad timeout",
			file:    "config.yaml",
			content: "blocks:\n  - command: date\n    timeout: soon\n",
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "capacity too small",
			file:    "config.yaml",
			content: "slot_capacity: 2\nblocks:\n  - command: date\n",
			wantErr: slot.ErrCapacityTooSmall,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stubConfigDir(t, map[string]string{tc.file: tc.content})

			_, err := Load(context.Background(), "")
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestLoad_AggregatesErrors(t *testing.T) {
	stubConfigDir(t, map[string]string{
		"config.yaml": "blocks:\n  - command: date\n    timeout: soon\n  - icon: x\n    signal: 40\n",
	})

	_, err := Load(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.ErrorIs(t, err, ErrInvalidTimeout)
	require.ErrorIs(t, err, block.ErrEmptyCommand)
	require.ErrorIs(t, err, block.ErrSignalOutOfRange)
}

func TestLoad_URL(t *testing.T) {
	cfg, err := Load(context.Background(), "./testdata/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, block.Table{{Icon: "T: ", Command: "echo from-getter", Interval: 3}}, cfg.Blocks)
	assert.Equal(t, block.DefaultDelimiter, cfg.Delimiter)
	assert.Equal(t, "./testdata/config.yaml", cfg.Source)
}

func TestGetterSource(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		wantSrc  string
		wantName string
		wantErr  error
	}{
		{name: "local", url: "/etc/goblocks/bar.yaml", wantSrc: "/etc/goblocks", wantName: "bar.yaml"},
		{name: "relative", url: "./testdata/config.yaml", wantSrc: "testdata", wantName: "config.yaml"},
		{
			name:     "git with ref",
			url:      "git::https://github.com/example/dots.git//bar/goblocks.toml?ref=main",
			wantSrc:  "git::https://github.com/example/dots.git//bar?ref=main",
			wantName: "goblocks.toml",
		},
		{name: "empty", url: "", wantErr: ErrGetConfigFile},
		{name: "no file", url: "git::https://github.com/example/dots.git", wantErr: ErrGetConfigFile},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src, name, err := getterSource(tc.url, "/home/user")
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantSrc, src)
			assert.Equal(t, tc.wantName, name)
		})
	}
}

func TestParse_UnknownFormat(t *testing.T) {
	_, err := Parse("config.json", []byte("{}"))
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSearchPaths(t *testing.T) {
	stubs := gostub.Stub(&userConfigDir, func() (string, error) { return "/xdg", nil })
	defer stubs.Reset()

	assert.Equal(t, []string{
		"/xdg/goblocks/config.yaml",
		"/xdg/goblocks/config.yml",
		"/xdg/goblocks/config.toml",
		"/xdg/goblocks/config.hcl",
	}, SearchPaths())
}
