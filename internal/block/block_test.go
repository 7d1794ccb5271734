// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockPrefix(t *testing.T) {
	assert.Equal(t, []byte("🕌 "), Block{Icon: "🕌 ", Command: "x"}.Prefix())
	assert.Equal(t, []byte("\x05CPU "), Block{Icon: "CPU ", Command: "x", Signal: 5}.Prefix())
	assert.Equal(t, []byte{7}, Block{Command: "x", Signal: 7}.Prefix())
}

func TestTableValidate(t *testing.T) {
	testCases := []struct {
		name    string
		table   Table
		wantErr []error
	}{
		{
			name:  "defaults are valid",
			table: Defaults(),
		},
		{
			name:    "empty table",
			table:   Table{},
			wantErr: []error{ErrNoBlocks},
		},
		{
			name: "all problems reported",
			table: Table{
				{Command: ""},
				{Command: "date", Signal: MaxSignal + 1},
				{Command: "date", Interval: -1},
			},
			wantErr: []error{ErrEmptyCommand, ErrSignalOutOfRange, ErrNegativeValue},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.table.Validate()
			if len(tc.wantErr) == 0 {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)

			for _, want := range tc.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestTableSignals(t *testing.T) {
	table := Table{
		{Command: "a", Signal: 5},
		{Command: "b"},
		{Command: "c", Signal: 7},
		{Command: "d", Signal: 5},
	}

	assert.Equal(t, []int{5, 7}, table.Signals())
}

func TestTableBySignal(t *testing.T) {
	table := Table{
		{Command: "a", Signal: 5},
		{Command: "b"},
	}

	b, ok := table.BySignal(5)
	require.True(t, ok)
	assert.Equal(t, "a", b.Command)

	_, ok = table.BySignal(9)
	assert.False(t, ok, "unknown signals are a lookup miss")

	_, ok = table.BySignal(0)
	assert.False(t, ok, "signal 0 never matches unbound blocks")
}
