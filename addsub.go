// Completion: 100% - add/sub templates complete
package main

// AddSubOp selects between the addition and the subtraction carry chain.
type AddSubOp struct {
	AddSub string // first-word instruction: add / sub
	AdcSbb string // chained instruction: adc / sbb
}

var (
	OpAdd = AddSubOp{AddSub: "add", AdcSbb: "adc"}
	OpSub = AddSubOp{AddSub: "sub", AdcSbb: "sbb"}
)

// genAddSub adds (or subtracts) b[0..n) into a[0..n) in place and returns 0
// on no carry, ~0 on carry, materialized with the sbbq r,r idiom.
func genAddSub(e Emitter, n int, op AddSubOp) {
	regA := e.TakeArgReg(0, false)
	regB := e.TakeArgReg(1, false)

	tmp := e.Store().Take(true)

	a := PointerReg{Reg: regA}
	b := PointerReg{Reg: regB}

	for i := 0; i < n; i++ {
		emitf(e, "movq %s, %s", b.Displace(i), tmp)
		if i > 0 {
			emitf(e, "%sq %s, %s", op.AdcSbb, tmp, a.Displace(i))
		} else {
			emitf(e, "%sq %s, %s", op.AddSub, tmp, a.Displace(i))
		}
	}

	ret := e.TakeRetvalReg(true)
	emitf(e, "sbbq %s, %s", ret, ret)

	e.Store().Untake(tmp)
}

// addSubMaskedGroup loads one group of b words, masks them, and runs the
// chained add/sub against a. With restore, the borrow/carry saved in regC is
// put back into CF first (shlq $1 moves bit 63 of the 0/~0 mask into CF).
// With save, the outgoing CF is parked in regC the same way.
func addSubMaskedGroup(e Emitter, a, b PointerReg, regC *RealReg, regMask Reg, mRegs []RealReg, op AddSubOp, save, restore bool) {
	for i, mr := range mRegs {
		emitf(e, "movq %s, %s", b.Displace(i), mr)
		emitf(e, "andq %s, %s", regMask, mr)
	}

	if restore {
		if regC == nil {
			panic(internalErrorf("carry restore without a carry register"))
		}
		emitf(e, "shlq $1, %s", *regC)
	}

	for i, mr := range mRegs {
		if !restore && i == 0 {
			emitf(e, "%sq %s, %s", op.AddSub, mr, a.Displace(i))
		} else {
			emitf(e, "%sq %s, %s", op.AdcSbb, mr, a.Displace(i))
		}
	}

	if save {
		if regC == nil {
			panic(internalErrorf("carry save without a carry register"))
		}
		emitf(e, "sbbq %s, %s", *regC, *regC)
	}
}

// genAddSubMasked is genAddSub with every b word AND-ed against a mask
// argument first. Words are processed in groups of m to cap temporary
// pressure; the carry chain is saved and restored across group boundaries.
func genAddSubMasked(e Emitter, n int, op AddSubOp, m int) {
	regA := e.TakeArgReg(0, false)
	regB := e.TakeArgReg(1, false)
	regMask := e.TakeArgReg(2, false)

	a := PointerReg{Reg: regA}
	b := PointerReg{Reg: regB}

	if n > m {
		regC := e.Store().Take(true)
		mRegs := make([]RealReg, m)
		for i := range mRegs {
			mRegs[i] = e.Store().Take(true)
		}
		restore := false
		for rest := n; rest > 0; {
			thisM := min(rest, m)
			addSubMaskedGroup(e, a, b, &regC, regMask, mRegs[:thisM], op, thisM != rest, restore)
			a = a.Displace(thisM)
			b = b.Displace(thisM)
			restore = true
			rest -= thisM
		}
		ret := e.TakeRetvalReg(true)
		emitf(e, "sbbq %s, %s", ret, ret)
		for _, mr := range mRegs {
			e.Store().Untake(mr)
		}
		e.Store().Untake(regC)
	} else {
		mRegs := make([]RealReg, n)
		for i := range mRegs {
			mRegs[i] = e.Store().Take(true)
		}
		addSubMaskedGroup(e, a, b, nil, regMask, mRegs, op, false, false)
		ret := e.TakeRetvalReg(true)
		emitf(e, "sbbq %s, %s", ret, ret)
		for _, mr := range mRegs {
			e.Store().Untake(mr)
		}
	}
}

// genAddSubScalar adds (or subtracts) the single word b into a[0..n),
// rippling the carry through zero addends. The leaky variant may branch out
// early once the remaining carry probability drops to about 2^-64; it is
// only worthwhile for n > 2.
func genAddSubScalar(e Emitter, n int, op AddSubOp, leaky bool) {
	regA := e.TakeArgReg(0, false)
	regB := e.TakeArgReg(1, false)

	a := PointerReg{Reg: regA}

	labelDone := ""
	if leaky && n > 2 {
		labelDone = e.GenLabel()
	}

	for i := 0; i < n; i++ {
		if i > 0 {
			emitf(e, "%sq $0, %s", op.AdcSbb, a.Displace(i))
			if labelDone != "" && i != n-1 {
				emitf(e, "jnc %s", labelDone)
			}
		} else {
			emitf(e, "%sq %s, %s", op.AddSub, regB, a.Displace(i))
			// No branch after the first word: the carry probability here is
			// close to 1/2, which the branch predictor cannot learn. For the
			// following words it is about 2^-64.
		}
	}

	if labelDone != "" {
		e.LabelHere(labelDone)
	}

	ret := e.TakeRetvalReg(true)
	emitf(e, "sbbq %s, %s", ret, ret)
}
