// Completion: 100% - comparison templates complete
package main

// genCmpLt compares a < b over n words via a subtract-with-borrow chain.
// Unsigned: the final borrow is broadcast to 0 / ~0 with sbbq. Signed: the
// SF/OF relation is read with setl, so the result is 0 / 1.
func genCmpLt(e Emitter, n int, isSigned bool) {
	regA := e.TakeArgReg(0, false)
	regB := e.TakeArgReg(1, false)

	tmp := e.Store().Take(true)

	a := PointerReg{Reg: regA}
	b := PointerReg{Reg: regB}

	for i := 0; i < n; i++ {
		emitf(e, "movq %s, %s", a.Displace(i), tmp)
		if i > 0 {
			emitf(e, "sbbq %s, %s", b.Displace(i), tmp)
		} else {
			emitf(e, "subq %s, %s", b.Displace(i), tmp)
		}
	}

	ret := e.TakeRetvalReg(true)
	if isSigned {
		emitf(e, "setl %s", ret.Byte())
		emitf(e, "movzbq %s, %s", ret.Byte(), ret)
	} else {
		emitf(e, "sbbq %s, %s", ret, ret)
	}

	e.Store().Untake(tmp)
}

// genCmpLe compares a <= b by evaluating b < a and inverting.
func genCmpLe(e Emitter, n int, isSigned bool) {
	regA := e.TakeArgReg(0, false)
	regB := e.TakeArgReg(1, false)

	tmp := e.Store().Take(true)

	a := PointerReg{Reg: regA}
	b := PointerReg{Reg: regB}

	for i := 0; i < n; i++ {
		emitf(e, "movq %s, %s", b.Displace(i), tmp)
		if i > 0 {
			emitf(e, "sbbq %s, %s", a.Displace(i), tmp)
		} else {
			emitf(e, "subq %s, %s", a.Displace(i), tmp)
		}
	}

	ret := e.TakeRetvalReg(true)
	if isSigned {
		emitf(e, "setge %s", ret.Byte())
		emitf(e, "movzbq %s, %s", ret.Byte(), ret)
	} else {
		emitf(e, "sbbq %s, %s", ret, ret)
		emitf(e, "notq %s", ret)
	}

	e.Store().Untake(tmp)
}

// genCmpEq XOR-reduces the two arrays into one register and collapses
// nonzero to 0, zero to ~0 with subq $1 / sbbq. The result register must not
// alias any input, so it is taken early-clobber.
func genCmpEq(e Emitter, n int) {
	regA := e.TakeArgReg(0, false)
	regB := e.TakeArgReg(1, false)

	tmp := e.Store().Take(true)

	ret := e.TakeRetvalReg(false)

	a := PointerReg{Reg: regA}
	b := PointerReg{Reg: regB}

	for i := 0; i < n; i++ {
		if i > 0 {
			emitf(e, "movq %s, %s", a.Displace(i), tmp)
			emitf(e, "xorq %s, %s", b.Displace(i), tmp)
			emitf(e, "orq %s, %s", tmp, ret)
		} else {
			emitf(e, "movq %s, %s", a.Displace(i), ret)
			emitf(e, "xorq %s, %s", b.Displace(i), ret)
		}
	}

	emitf(e, "subq $1, %s", ret)
	emitf(e, "sbbq %s, %s", ret, ret)

	e.Store().Untake(tmp)
}
