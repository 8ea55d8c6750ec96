package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineEmitEscaping(t *testing.T) {
	var buf bytes.Buffer
	e := NewInlineAsmEmitter(&buf)
	arg := e.TakeArgReg(0, false)
	tmp := e.Store().Take(true)
	emitf(e, "movq %s, %s", PointerReg{Reg: arg}, tmp)
	assert.Equal(t, "    \"movq (%[arg0]), %%r11\\n\"\n", buf.String())
}

func TestInlineArgOrderEnforced(t *testing.T) {
	e := NewInlineAsmEmitter(&bytes.Buffer{})
	e.TakeArgReg(0, false)
	assert.Panics(t, func() { e.TakeArgReg(2, false) })
}

func TestInlineLabelsCarryDisambiguator(t *testing.T) {
	var buf bytes.Buffer
	e := NewInlineAsmEmitter(&buf)
	label := e.GenLabel()
	emitf(e, "jnc %s", label)
	e.LabelHere(label)
	assert.Equal(t, ".L!=_1", label)
	lines := splitLines(buf.String())
	require.Len(t, lines, 2)
	assert.Equal(t, "    \"jnc .L%=_1\\n\"", lines[0])
	assert.Equal(t, "    \".L%=_1:\\n\"", lines[1])
}

func TestInlineEpilogueWrittenArgBecomesOutput(t *testing.T) {
	var buf bytes.Buffer
	e := NewInlineAsmEmitter(&buf)
	e.EmitPrologue()
	e.TakeArgReg(0, true)
	e.TakeArgReg(1, false)
	e.EmitEpilogue()
	text := buf.String()
	assert.Contains(t, text, `: [arg0] "+r" (arg0)`)
	assert.Contains(t, text, `: [arg1] "r" (arg1)`)
	assert.Contains(t, text, `: "cc", "memory"`)
}

func TestInlineEpilogueForcedNameLetters(t *testing.T) {
	var buf bytes.Buffer
	e := NewInlineAsmEmitter(&buf)
	e.EmitPrologue()
	e.TakeArgRegInto(0, false, "rcx")
	e.TakeArgRegInto(1, false, "rdi")
	e.EmitEpilogue()
	text := buf.String()
	assert.Contains(t, text, `[arg0] "c" (arg0)`)
	assert.Contains(t, text, `[arg1] "D" (arg1)`)
}

func TestInlineEpilogueRetval(t *testing.T) {
	var buf bytes.Buffer
	e := NewInlineAsmEmitter(&buf)
	e.EmitPrologue()
	e.TakeRetvalReg(true)
	e.EmitEpilogue()
	assert.Contains(t, buf.String(), `: [ret] "=r" (ret)`)

	buf.Reset()
	e = NewInlineAsmEmitter(&buf)
	e.EmitPrologue()
	e.TakeRetvalReg(false)
	e.EmitEpilogue()
	assert.Contains(t, buf.String(), `: [ret] "=&r" (ret)`)
}

func TestInlineWriteRetvalNamedRegisterNeedsNoMove(t *testing.T) {
	var buf bytes.Buffer
	e := NewInlineAsmEmitter(&buf)
	e.EmitPrologue()
	rdx := e.Store().TakeByName("rdx", true)
	e.WriteRetval(rdx)
	e.EmitEpilogue()
	text := buf.String()
	assert.NotContains(t, text, "movq")
	// rdx is the return operand: early-clobber output, dropped from clobbers.
	assert.Contains(t, text, `: [ret] "=&d" (ret)`)
	assert.NotContains(t, text, `"rdx"`)
}

func TestInlineWriteRetvalUnnamedRegisterMoves(t *testing.T) {
	var buf bytes.Buffer
	e := NewInlineAsmEmitter(&buf)
	e.EmitPrologue()
	r11 := e.Store().TakeByName("r11", true)
	e.WriteRetval(r11)
	e.EmitEpilogue()
	text := buf.String()
	assert.Contains(t, text, "\"movq %%r11, %[ret]\\n\"")
	assert.Contains(t, text, `: [ret] "=r" (ret)`)
	assert.Contains(t, text, `"r11"`)
}

func TestInlineZeroInput(t *testing.T) {
	var buf bytes.Buffer
	e := NewInlineAsmEmitter(&buf)
	e.EmitPrologue()
	zero := e.TakeZeroReg()
	assert.Equal(t, "![zero]", zero.String())
	e.EmitEpilogue()
	assert.Contains(t, buf.String(), `[zero] "r" ((uint64_t) 0)`)
}

func TestInlineEpilogueEmptySections(t *testing.T) {
	var buf bytes.Buffer
	e := NewInlineAsmEmitter(&buf)
	e.EmitPrologue()
	e.EmitEpilogue()
	text := buf.String()
	assert.Contains(t, text, "/*no outputs*/")
	assert.Contains(t, text, "/*no inputs*/")
	assert.Contains(t, text, `: "cc", "memory"`)
}

func TestInlineClobbersSortedAndComplete(t *testing.T) {
	var buf bytes.Buffer
	e := NewInlineAsmEmitter(&buf)
	e.EmitPrologue()
	e.Store().Take(true) // r11
	e.Store().Take(true) // r10
	e.Store().TakeByName("rax", true)
	e.EmitEpilogue()
	lines := splitLines(buf.String())
	clobberLine := lines[len(lines)-2]
	assert.Equal(t, `    : "cc", "memory", "r10", "r11", "rax"`, clobberLine)
}

// Every register written during a routine must surface as an output operand,
// a "+" input, or a clobber.
func TestInlineClobberSoundnessAcrossCatalog(t *testing.T) {
	for _, withBMI2 := range []bool{false, true} {
		caps := fixedCaps(withBMI2)
		for _, n := range []int{1, 2, 4, 8, 12, 16} {
			for _, f := range generatedFuncs(n, true, caps) {
				var buf bytes.Buffer
				e := NewInlineAsmEmitter(&buf)
				e.EmitPrologue()
				f.Callback(e)
				e.EmitEpilogue()
				text := buf.String()
				require.Contains(t, text, `"cc"`, "%s", f.Name)
				require.Contains(t, text, `"memory"`, "%s", f.Name)
				for _, name := range e.Store().Clobbers() {
					covered := strings.Contains(text, `"`+name+`"`)
					if letter := regNamesToLetters[name]; !covered && letter != "" {
						covered = strings.Contains(text, `"=`+letter+`"`) ||
							strings.Contains(text, `"=&`+letter+`"`) ||
							strings.Contains(text, `"+`+letter+`"`)
					}
					require.True(t, covered, "%s: written register %s not reported", f.Name, name)
				}
			}
		}
	}
}
