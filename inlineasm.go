// Completion: 100% - GCC extended-asm backend complete
package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// regNamesToLetters maps register names to their GCC constraint letters.
var regNamesToLetters = map[string]string{
	"rax": "a",
	"rbx": "b",
	"rcx": "c",
	"rdx": "d",
	"rsi": "S",
	"rdi": "D",
}

type inlineArg struct {
	written    bool
	forcedName string
}

// InlineAsmEmitter renders a routine as the body of a GCC extended-asm
// block. Arguments and the result are symbolic placeholders bound by the
// constraint solver; only temporaries taken from the scratch pool appear as
// concrete registers, and those are reported in the clobber list.
type InlineAsmEmitter struct {
	w                  io.Writer
	store              *RegStore
	args               []inlineArg
	haveRetval         bool
	retvalName         string
	retvalEarlyClobber bool
	needsZeroInput     bool
	labelCounter       int
}

func NewInlineAsmEmitter(w io.Writer) *InlineAsmEmitter {
	return &InlineAsmEmitter{
		w:     w,
		store: NewRegStore(ScratchRegs),
	}
}

func (e *InlineAsmEmitter) Store() *RegStore {
	return e.store
}

// AddFixedReg is a no-op here: the constraint solver handles binding.
func (e *InlineAsmEmitter) AddFixedReg(name string) {}

func (e *InlineAsmEmitter) SetNArgs(nargs int) {}

func (e *InlineAsmEmitter) TakeZeroReg() Reg {
	e.needsZeroInput = true
	return FakeReg{Keyword: "zero"}
}

func (e *InlineAsmEmitter) TakeArgReg(index int, write bool) Reg {
	return e.TakeArgRegInto(index, write, "")
}

func (e *InlineAsmEmitter) TakeArgRegInto(index int, write bool, intoName string) Reg {
	if len(e.args) != index {
		panic(internalErrorf("arguments must be taken in index order: got %d, want %d", index, len(e.args)))
	}
	e.args = append(e.args, inlineArg{written: write, forcedName: intoName})
	return FakeReg{Keyword: fmt.Sprintf("arg%d", index)}
}

func (e *InlineAsmEmitter) TakeRetvalReg(mayOverwriteTaken bool) Reg {
	e.haveRetval = true
	e.retvalName = ""
	e.retvalEarlyClobber = !mayOverwriteTaken
	return FakeReg{Keyword: "ret"}
}

// WriteRetval records that an already-occupied named register is the return
// operand when possible, so no move is needed; otherwise it moves src into
// the symbolic return placeholder.
func (e *InlineAsmEmitter) WriteRetval(src Reg) {
	if rr, ok := src.(RealReg); ok {
		if _, known := regNamesToLetters[rr.Name()]; known {
			e.haveRetval = true
			e.retvalName = rr.Name()
			return
		}
	}
	e.haveRetval = true
	e.retvalName = ""
	emitf(e, "movq %s, ![ret]", src)
}

func (e *InlineAsmEmitter) EmitPrologue() {
	fmt.Fprintln(e.w, "    asm volatile (")
}

// Emit quotes one instruction line. '%' must reach GCC doubled; '!' is the
// generator-side stand-in for a literal '%' in operand placeholders.
func (e *InlineAsmEmitter) Emit(line string) {
	line = strings.ReplaceAll(line, "%", "%%")
	line = strings.ReplaceAll(line, "!", "%")
	fmt.Fprintf(e.w, "    \"%s\\n\"\n", line)
}

// EmitEpilogue builds the ": outputs : inputs : clobbers );" tail from the
// usage observed while the template ran.
func (e *InlineAsmEmitter) EmitEpilogue() {
	clobbers := e.store.Clobbers()
	var outputs, inputs []string

	addOutput := func(keyword, regName string, isRead, forceEarlyClobber bool) {
		earlyClobber := forceEarlyClobber
		mode := "="
		if isRead {
			mode = "+"
		}
		letter := "r"
		if regName != "" {
			letter = regNamesToLetters[regName]
			if lo.Contains(clobbers, regName) {
				clobbers = lo.Without(clobbers, regName)
				earlyClobber = true
			}
		}
		if earlyClobber {
			mode += "&"
		}
		outputs = append(outputs, fmt.Sprintf("[%s] \"%s%s\" (%s)", keyword, mode, letter, keyword))
	}

	addInput := func(keyword, regName string) {
		letter := "r"
		if regName != "" {
			letter = regNamesToLetters[regName]
		}
		inputs = append(inputs, fmt.Sprintf("[%s] \"%s\" (%s)", keyword, letter, keyword))
	}

	for i, arg := range e.args {
		keyword := fmt.Sprintf("arg%d", i)
		sameAsRetval := arg.forcedName != "" && arg.forcedName == e.retvalName
		if arg.written && !sameAsRetval {
			addOutput(keyword, arg.forcedName, true, false)
		} else {
			addInput(keyword, arg.forcedName)
		}
	}

	if e.haveRetval {
		addOutput("ret", e.retvalName, false, e.retvalEarlyClobber)
	}

	if e.needsZeroInput {
		inputs = append(inputs, `[zero] "r" ((uint64_t) 0)`)
	}

	clobbers = append(clobbers, "cc", "memory")
	sort.Strings(clobbers)
	quoted := lo.Map(clobbers, func(s string, _ int) string { return `"` + s + `"` })

	fmt.Fprintf(e.w, "    : %s\n", orComment(strings.Join(outputs, ", "), "/*no outputs*/"))
	fmt.Fprintf(e.w, "    : %s\n", orComment(strings.Join(inputs, ", "), "/*no inputs*/"))
	fmt.Fprintf(e.w, "    : %s\n", orComment(strings.Join(quoted, ", "), "/*no clobbers*/"))
	fmt.Fprintln(e.w, "    );")
}

func orComment(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// GenLabel yields labels carrying the %= placeholder so GCC disambiguates
// them across expansions of the same asm block.
func (e *InlineAsmEmitter) GenLabel() string {
	e.labelCounter++
	return fmt.Sprintf(".L!=_%d", e.labelCounter)
}

func (e *InlineAsmEmitter) LabelHere(label string) {
	e.Emit(label + ":")
}
