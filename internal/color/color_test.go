// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	devNull, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatal(err)
	}
	defer devNull.Close() //nolint:errcheck

	t.Setenv(NoColor, "1")
	assert.False(t, detect(devNull), "NO_COLOR should disable color")

	t.Setenv(ForceColor, "1")
	assert.False(t, detect(devNull), "NO_COLOR should win over FORCE_COLOR")

	t.Setenv(NoColor, "")
	assert.True(t, detect(devNull), "FORCE_COLOR should enable color on a non-terminal")

	t.Setenv(ForceColor, "")
	assert.False(t, detect(devNull), "a non-terminal should not be colored by default")
}

func TestColorize(t *testing.T) {
	stubs := gostub.Stub(&enabled, true)
	defer stubs.Reset()

	assert.Equal(t, "\033[31;1mERR\033[0m", Colorize("ERR", FgRed, Bold))
	assert.Equal(t, "plain", Colorize("plain"))

	stubs.Stub(&enabled, false)
	assert.Equal(t, "ERR", Colorize("ERR", FgRed))
}
