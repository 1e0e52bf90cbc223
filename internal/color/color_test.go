// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsColorCapable(t *testing.T) {
	const notATerminal = -1

	t.Setenv(NoColor, "1")
	assert.False(t, isColorCapable(notATerminal), "Expected color output to be disabled")

	t.Setenv(ForceColor, "1")
	assert.False(t, isColorCapable(notATerminal), "Expected color output to be disabled as NO_COLOR is still set")

	t.Setenv(NoColor, "")
	assert.True(t, isColorCapable(notATerminal), "Expected color output to be enabled as FORCE_COLOR is set")

	t.Setenv(ForceColor, "")
	assert.False(t, isColorCapable(notATerminal), "Expected color output to be disabled for a non-terminal")
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "\033[31mred\033[0m", Wrap("red", FgRed))
	assert.Equal(t, "\033[1;92mok\033[0m", Wrap("ok", Bold, FgHiGreen))
}

func BenchmarkWrap(b *testing.B) {
	for b.Loop() {
		Wrap("benchmark", FgRed)
	}
}
