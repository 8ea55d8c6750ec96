package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenCHeader(t *testing.T) {
	var buf bytes.Buffer
	genCHeader(&buf, generatedFuncs(2, false, fixedCaps(false)))
	lines := splitLines(buf.String())

	require.Equal(t, "// Auto-generated; do not edit.", lines[0])
	require.Equal(t, "#pragma once", lines[1])
	require.Equal(t, "#include <stdint.h>", lines[2])
	require.Equal(t, "", lines[3])

	assert.Contains(t, lines, "extern uint64_t asm_add_2(uint64_t*, const uint64_t*);")
	assert.Contains(t, lines, "extern uint64_t asm_mul_q_2(const uint64_t*, uint64_t, uint64_t*);")
	assert.Contains(t, lines, "extern uint64_t asm_mod_q_2(const uint64_t*, uint64_t);")
	assert.Contains(t, lines, "extern void asm_shr_words_2(const uint64_t*, uint64_t, uint64_t*);")
	assert.Len(t, lines, 4+28)
}

func TestGenAsm(t *testing.T) {
	var buf bytes.Buffer
	genAsm(&buf, generatedFuncs(4, false, fixedCaps(false)))
	text := buf.String()

	assert.True(t, strings.HasPrefix(text, "# Auto-generated; do not edit.\n"))
	assert.Contains(t, text, ".global asm_add_4\n.type asm_add_4, @function\n.align 32\nasm_add_4:\n")
	assert.Equal(t, 28, strings.Count(text, "\nretq\n"))
}

// Local labels must stay unique across routines within one run: both leaky
// variants emit one, and they must not collide.
func TestGenAsmLabelUniqueness(t *testing.T) {
	var buf bytes.Buffer
	genAsm(&buf, generatedFuncs(4, false, fixedCaps(false)))
	text := buf.String()
	assert.Equal(t, 1, strings.Count(text, "\n.L1:\n"))
	assert.Equal(t, 1, strings.Count(text, "\n.L2:\n"))
}

func TestGenInlineAsm(t *testing.T) {
	var buf bytes.Buffer
	genInlineAsm(&buf, generatedFuncs(1, true, fixedCaps(false)))
	text := buf.String()

	assert.True(t, strings.HasPrefix(text, "// Auto-generated; do not edit.\n#pragma once\n#include <stdint.h>\n#include \"asm_config.h\"\n"))
	assert.Contains(t, text, "asm_attrs uint64_t asm_add_1(uint64_t* arg0, const uint64_t* arg1)\n{\n    uint64_t ret;\n    asm volatile (\n")
	assert.Contains(t, text, "    return ret;\n}\n")
	// Void routines declare no result local and return nothing.
	assert.Contains(t, text, "asm_attrs void asm_shr_1(const uint64_t* arg0, uint64_t arg1, uint64_t* arg2)\n{\n    asm volatile (\n")
	assert.Equal(t, 28, strings.Count(text, "asm volatile ("))
	assert.Equal(t, 28, strings.Count(text, "    );\n"))
}

func TestParseProto(t *testing.T) {
	params, retval := parseProto("#*, @#*, # -> #")
	assert.Equal(t, []string{"#*", "@#*", "#"}, params)
	assert.Equal(t, "#", retval)

	params, retval = parseProto("@#*, @#*, #* -> void")
	assert.Equal(t, []string{"@#*", "@#*", "#*"}, params)
	assert.Equal(t, "void", retval)
}

func TestProtoToCType(t *testing.T) {
	assert.Equal(t, "uint64_t", protoToCType("#"))
	assert.Equal(t, "uint64_t*", protoToCType("#*"))
	assert.Equal(t, "const uint64_t*", protoToCType("@#*"))
	assert.Equal(t, "void", protoToCType("void"))
}
