// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/goblocks/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, write(&buf, config.Default()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# source: built-in defaults\n"))
	assert.Contains(t, out, "command: date")

	f, err := config.Parse("out.yaml", buf.Bytes())
	require.NoError(t, err)

	cfg, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}
