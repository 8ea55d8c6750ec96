// Completion: 100% - divide/modulo template complete
package main

// genDivQ divides a[0..n) by the word m, walking the words from most to
// least significant: each divq consumes rdx:rax, leaving the quotient word
// in rax and the running remainder in rdx for the next step. The final rdx
// is returned. With operation "mod" the quotient stores are omitted.
//
// Division by zero is not guarded; the generated code traps at runtime.
func genDivQ(e Emitter, n int, operation string) {
	e.AddFixedReg("rax")
	e.AddFixedReg("rdx")

	regA := e.TakeArgReg(0, false)
	regM := e.TakeArgReg(1, false)

	var dst PointerReg
	haveDst := false
	switch operation {
	case "div":
		regDst := e.TakeArgReg(2, false)
		dst = PointerReg{Reg: regDst}
		haveDst = true
	case "mod":
	default:
		panic(internalErrorf("expected either %q or %q as operation, got %q", "div", "mod", operation))
	}

	a := PointerReg{Reg: regA}

	rax := e.Store().TakeByName("rax", true)
	rdx := e.Store().TakeByName("rdx", true)

	emitf(e, "xorl %s, %s", rdx.Dword(), rdx.Dword())

	for i := n - 1; i >= 0; i-- {
		emitf(e, "movq %s, %s", a.Displace(i), rax)
		emitf(e, "divq %s", regM)
		if haveDst {
			emitf(e, "movq %s, %s", rax, dst.Displace(i))
		}
	}

	e.WriteRetval(rdx)
	e.Store().Untake(rax)
}
