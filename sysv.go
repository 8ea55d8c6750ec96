// Completion: 100% - standalone SysV backend complete
package main

import (
	"fmt"
	"io"

	"github.com/samber/lo"
)

// SysvEmitter renders a routine as raw AT&T-syntax instructions following the
// System V AMD64 calling convention. Registers are concrete: arguments arrive
// in rdi/rsi/rdx/rcx/r8/r9, the result leaves in rax, and temporaries come
// from the scratch pool. Callee-saved registers stay outside the default
// pool, so no stack frame or saves are emitted.
type SysvEmitter struct {
	w            io.Writer
	store        *RegStore
	fixedRegs    []string
	argMap       []string
	labelCounter *int
}

// NewSysvEmitter creates an emitter writing to w. labelCounter is shared
// across all routines of one generation run so labels stay file-unique.
func NewSysvEmitter(w io.Writer, labelCounter *int) *SysvEmitter {
	return &SysvEmitter{
		w:            w,
		store:        NewRegStore(ScratchRegs),
		argMap:       append([]string(nil), SysvArgRegs.Names()...),
		labelCounter: labelCounter,
	}
}

func (e *SysvEmitter) Store() *RegStore {
	return e.store
}

func (e *SysvEmitter) AddFixedReg(name string) {
	e.fixedRegs = append(e.fixedRegs, name)
}

func (e *SysvEmitter) TakeZeroReg() Reg {
	reg := e.store.Take(true)
	emitf(e, "xorl %s, %s", reg.Dword(), reg.Dword())
	return reg
}

// SetNArgs pre-moves every argument whose SysV slot collides with a fixed
// register into a fresh scratch, then rebinds the argument to that scratch.
// The scratch registers are untaken afterwards: the argument map remembers
// them by name, and templates take them back when the argument is requested.
func (e *SysvEmitter) SetNArgs(nargs int) {
	e.argMap = nil
	var taken []RealReg
	for i := 0; i < nargs; i++ {
		regName := SysvArgRegs.NameByIndex(i)
		if lo.Contains(e.fixedRegs, regName) {
			dst := e.store.Take(true)
			e.argMap = append(e.argMap, dst.Name())
			emitf(e, "movq %%%s, %s", regName, dst)
			taken = append(taken, dst)
		} else {
			e.argMap = append(e.argMap, regName)
		}
	}
	for _, reg := range taken {
		e.store.Untake(reg)
	}
}

func (e *SysvEmitter) TakeArgReg(index int, write bool) Reg {
	return e.TakeArgRegInto(index, write, "")
}

func (e *SysvEmitter) TakeArgRegInto(index int, write bool, intoName string) Reg {
	regName := e.argMap[index]
	shouldMove := lo.Contains(e.fixedRegs, regName) || (intoName != "" && intoName != regName)
	if !shouldMove {
		return e.store.TakeByName(regName, write)
	}
	src := e.store.TakeByName(regName, false)
	var dst RealReg
	if intoName != "" {
		dst = e.store.TakeByName(intoName, true)
	} else {
		dst = e.store.Take(true)
	}
	emitf(e, "movq %s, %s", src, dst)
	e.store.Untake(src)
	return dst
}

func (e *SysvEmitter) TakeRetvalReg(mayOverwriteTaken bool) Reg {
	return e.store.TakeByName("rax", true)
}

func (e *SysvEmitter) WriteRetval(src Reg) {
	e.store.SetModeByName("rax", true)
	if src.String() != "%rax" {
		emitf(e, "movq %s, %%rax", src)
	}
}

func (e *SysvEmitter) EmitPrologue() {}

func (e *SysvEmitter) EmitEpilogue() {}

func (e *SysvEmitter) Emit(line string) {
	fmt.Fprintln(e.w, line)
}

func (e *SysvEmitter) GenLabel() string {
	(*e.labelCounter)++
	return fmt.Sprintf(".L%d", *e.labelCounter)
}

func (e *SysvEmitter) LabelHere(label string) {
	e.Emit(label + ":")
}
