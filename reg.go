// Completion: 100% - register catalog and operand spellings complete
package main

import "fmt"

// Register catalog for x86-64 code generation.
//
// We allocate from 14 general-purpose registers: the nine scratch registers
// first, then the five callee-saved ones. rsp and rbp are never touched.
// An index into AllRegs identifies a register everywhere in the generator.

// RegList is an immutable ordered list of register names.
type RegList struct {
	names []string
}

func NewRegList(names ...string) *RegList {
	return &RegList{names: names}
}

func (rl *RegList) NameByIndex(index int) string {
	return rl.names[index]
}

func (rl *RegList) IndexByName(name string) int {
	for i, n := range rl.names {
		if n == name {
			return i
		}
	}
	panic(internalErrorf("unknown register name: %s", name))
}

func (rl *RegList) Names() []string {
	return rl.names
}

func (rl *RegList) Len() int {
	return len(rl.names)
}

var ScratchRegs = NewRegList("rax", "rdi", "rsi", "rdx", "rcx", "r8", "r9", "r10", "r11")

var CalleeSavedRegs = NewRegList("rbx", "r12", "r13", "r14", "r15")

var AllRegs = NewRegList(append(append([]string{}, ScratchRegs.Names()...), CalleeSavedRegs.Names()...)...)

// First 6 function args are passed in: rdi rsi rdx rcx r8 r9
var SysvArgRegs = NewRegList("rdi", "rsi", "rdx", "rcx", "r8", "r9")

// subRegNames maps a 64-bit register name to its 32-bit and 8-bit spellings.
var subRegNames = map[string]struct{ dword, low string }{
	"rax": {"eax", "al"},
	"rdi": {"edi", "dil"},
	"rsi": {"esi", "sil"},
	"rdx": {"edx", "dl"},
	"rcx": {"ecx", "cl"},
	"r8":  {"r8d", "r8b"},
	"r9":  {"r9d", "r9b"},
	"r10": {"r10d", "r10b"},
	"r11": {"r11d", "r11b"},
	"rbx": {"ebx", "bl"},
	"r12": {"r12d", "r12b"},
	"r13": {"r13d", "r13b"},
	"r14": {"r14d", "r14b"},
	"r15": {"r15d", "r15b"},
}

// Operand is anything that can be spelled into an instruction line.
type Operand interface {
	String() string
}

// Lit is a literal operand, e.g. the immediate "$0".
type Lit string

func (l Lit) String() string {
	return string(l)
}

// Reg is a register operand: either a concrete register (RealReg) or a
// symbolic placeholder resolved by the compiler's constraint solver (FakeReg).
type Reg interface {
	Operand
	Dword() string
	Byte() string
}

// RealReg is a concrete register, identified by its index into AllRegs.
type RealReg struct {
	Index int
}

func (r RealReg) Name() string {
	return AllRegs.NameByIndex(r.Index)
}

func (r RealReg) String() string {
	return "%" + r.Name()
}

func (r RealReg) Dword() string {
	return "%" + subRegNames[r.Name()].dword
}

func (r RealReg) Byte() string {
	return "%" + subRegNames[r.Name()].low
}

// FakeReg is a named operand placeholder. It is spelled with '!' where the
// final output wants '%'; InlineAsmEmitter.Emit performs the rewrite, so the
// emitted text reads %[kw], %k[kw], %b[kw].
type FakeReg struct {
	Keyword string
}

func (r FakeReg) String() string {
	return fmt.Sprintf("![%s]", r.Keyword)
}

func (r FakeReg) Dword() string {
	return fmt.Sprintf("!k[%s]", r.Keyword)
}

func (r FakeReg) Byte() string {
	return fmt.Sprintf("!b[%s]", r.Keyword)
}

// mustRealReg asserts that an operand is a concrete register.
func mustRealReg(r Reg) RealReg {
	rr, ok := r.(RealReg)
	if !ok {
		panic(internalErrorf("expected a concrete register, got %s", r))
	}
	return rr
}

// PointerReg is a displaced pointer operand: a base register plus an offset
// counted in 64-bit words.
type PointerReg struct {
	Reg    Reg
	Offset int
}

func (p PointerReg) String() string {
	if p.Offset != 0 {
		return fmt.Sprintf("%d(%s)", p.Offset*8, p.Reg)
	}
	return fmt.Sprintf("(%s)", p.Reg)
}

// Displace returns a new pointer operand sharing the base.
func (p PointerReg) Displace(offset int) PointerReg {
	return PointerReg{Reg: p.Reg, Offset: p.Offset + offset}
}
