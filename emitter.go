// Completion: 100% - emitter contract complete
package main

import "fmt"

// Emitter is the contract every routine template is written against. Two
// implementations exist: SysvEmitter prints raw AT&T instructions with
// concrete registers, InlineAsmEmitter prints a GCC extended-asm block with
// symbolic operands and a constraint tail. A template run against both must
// describe the same machine behavior.
type Emitter interface {
	// AddFixedReg declares that the routine will address the named register
	// directly. Must precede taking any argument that could collide with it.
	AddFixedReg(name string)

	// SetNArgs locks in how many routine arguments are live, rebinding any
	// whose SysV slot collides with a fixed register.
	SetNArgs(nargs int)

	// TakeArgReg returns a register holding argument index. Arguments must
	// be taken in increasing index order.
	TakeArgReg(index int, write bool) Reg

	// TakeArgRegInto forces argument index into the named register, moving
	// it if necessary.
	TakeArgRegInto(index int, write bool, intoName string) Reg

	// TakeZeroReg returns a register guaranteed to hold zero.
	TakeZeroReg() Reg

	// TakeRetvalReg returns the register carrying the routine result. With
	// mayOverwriteTaken false the result must not alias any live input.
	TakeRetvalReg(mayOverwriteTaken bool) Reg

	// WriteRetval routes src into the return register.
	WriteRetval(src Reg)

	Emit(line string)
	EmitPrologue()
	EmitEpilogue()

	// GenLabel returns a fresh routine-local label; LabelHere places it.
	GenLabel() string
	LabelHere(label string)

	// Store exposes the scratch register pool.
	Store() *RegStore
}

// emitf formats one instruction line into the emitter.
func emitf(e Emitter, format string, args ...any) {
	e.Emit(fmt.Sprintf(format, args...))
}
