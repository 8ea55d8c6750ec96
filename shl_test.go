package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenShlBaseline2(t *testing.T) {
	lines := sysvLines(t, func(e Emitter) { genShl(e, 2, false) })
	require.Equal(t, []string{
		"movq %rsi, %rcx",
		"movq (%rdi), %r10",
		"movq 8(%rdi), %r11",
		"shldq %cl, %r10, %r11",
		"movq %r11, 8(%rdx)",
		"shlq %cl, %r10",
		"movq %r10, (%rdx)",
	}, lines)
}

func TestGenShlBMI2_2(t *testing.T) {
	lines := sysvLines(t, func(e Emitter) { genShl(e, 2, true) })
	require.Equal(t, []string{
		"movq %rsi, %r9",
		"negq %r9",
		"movq (%rdi), %r10",
		"shlxq %rsi, 8(%rdi), %r11",
		"shrxq %r9, %r10, %r8",
		"orq %r8, %r11",
		"movq %r11, 8(%rdx)",
		"shlxq %rsi, %r10, %r10",
		"movq %r10, (%rdx)",
	}, lines)
}

func TestGenShlSingleWord(t *testing.T) {
	lines := sysvLines(t, func(e Emitter) { genShl(e, 1, false) })
	require.Equal(t, []string{
		"movq %rsi, %rcx",
		"movq (%rdi), %r11",
		"shlq %cl, %r11",
		"movq %r11, (%rdx)",
	}, lines)
}

func TestGenShlInlineCountConstraint(t *testing.T) {
	text := inlineText(t, func(e Emitter) { genShl(e, 2, false) })
	assert.Contains(t, text, `[arg1] "c" (arg1)`)
	assert.Contains(t, text, "shldq %%cl,")
}

// Under BMI2 the count is an ordinary register argument.
func TestGenShlInlineBMI2NoForcedCount(t *testing.T) {
	text := inlineText(t, func(e Emitter) { genShl(e, 2, true) })
	assert.Contains(t, text, `[arg1] "r" (arg1)`)
	assert.False(t, strings.Contains(text, "%%cl"))
}

func TestShlPoolBalanced(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 16} {
		assertInlinePoolBalanced(t, "shl", func(e Emitter) { genShl(e, n, false) })
		assertInlinePoolBalanced(t, "shl_bmi2", func(e Emitter) { genShl(e, n, true) })
	}
}
