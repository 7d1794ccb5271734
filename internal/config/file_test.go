// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"testing"
	"time"

	"github.com/matt-FFFFFF/goblocks/internal/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateDelimiter(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: " | ", want: " | "},
		{in: "12345", want: "12345"},
		{in: "123456", want: "12345"},
		{in: " ▏ ▏", want: " ▏ "},
		{in: "ab🕌", want: "ab"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, TruncateDelimiter(tc.in))
		})
	}
}

func TestBuild_LongDelimiter(t *testing.T) {
	delim := " <--> "
	f := File{Delimiter: &delim, Blocks: []BlockConfig{{Command: "date"}}}

	cfg, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, " <-->", cfg.Delimiter)
}

func TestBuild_NoBlocksUsesDefaults(t *testing.T) {
	f := File{SlotCapacity: 80}

	cfg, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, block.Defaults(), cfg.Blocks)
	assert.Equal(t, 80, cfg.SlotCapacity)
}

func TestConfigFile_RoundTrip(t *testing.T) {
	cfg := &Config{
		Delimiter:    "|",
		SlotCapacity: 40,
		Socket:       "/tmp/s.sock",
		Blocks: block.Table{
			{Icon: "A ", Command: "echo a", Signal: 2},
			{Command: "echo b", Interval: 10, Timeout: 3 * time.Second},
		},
	}

	out, err := Marshal(cfg.File())
	require.NoError(t, err)

	f, err := Parse("out.yaml", out)
	require.NoError(t, err)

	got, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
