// Completion: 100% - left-shift template complete, baseline and BMI2 paths
package main

// doShl mirrors doShr for the left direction: shldq pulls donor bits in from
// below on the baseline path, shlxq plus shrxq by the negated count on the
// BMI2 path.
func doShl(e Emitter, src Operand, regDst RealReg, regDonor *RealReg, regCount Reg, regNegCount, regScratch RealReg, useBMI2 bool) {
	if useBMI2 {
		emitf(e, "shlxq %s, %s, %s", regCount, src, regDst)
		if regDonor != nil {
			emitf(e, "shrxq %s, %s, %s", regNegCount, *regDonor, regScratch)
			emitf(e, "orq %s, %s", regScratch, regDst)
		}
	} else {
		if src.String() != regDst.String() {
			emitf(e, "movq %s, %s", src, regDst)
		}
		if regDonor != nil {
			emitf(e, "shldq %%cl, %s, %s", *regDonor, regDst)
		} else {
			emitf(e, "shlq %%cl, %s", regDst)
		}
	}
}

// genShl shifts a[0..n) left by a runtime count of 1..63 bits into dst,
// walking the words downward; the donor for word i is word i-1.
func genShl(e Emitter, n int, useBMI2 bool) {
	if !useBMI2 {
		e.AddFixedReg("rcx")
	}

	regA := e.TakeArgReg(0, false)
	var regCount Reg
	if useBMI2 {
		regCount = e.TakeArgReg(1, false)
	} else {
		regCount = e.TakeArgRegInto(1, false, "rcx")
	}
	regDst := e.TakeArgReg(2, false)

	regTmp1 := e.Store().Take(true)
	regTmp2 := e.Store().Take(true)

	var regNegCount, regScratch RealReg
	if useBMI2 {
		regNegCount = e.Store().Take(true)
		regScratch = e.Store().Take(true)
		emitf(e, "movq %s, %s", regCount, regNegCount)
		emitf(e, "negq %s", regNegCount)
	}

	a := PointerReg{Reg: regA}
	dst := PointerReg{Reg: regDst}

	for i := n - 1; i >= 0; i-- {
		var curSrc Operand = regTmp1
		if i == n-1 {
			curSrc = a.Displace(i)
		}

		var curDonor *RealReg
		if i != 0 {
			emitf(e, "movq %s, %s", a.Displace(i-1), regTmp2)
			curDonor = &regTmp2
		}

		doShl(e, curSrc, regTmp1, curDonor, regCount, regNegCount, regScratch, useBMI2)

		emitf(e, "movq %s, %s", regTmp1, dst.Displace(i))
		regTmp1, regTmp2 = regTmp2, regTmp1
	}

	e.Store().Untake(regTmp1)
	e.Store().Untake(regTmp2)
	if useBMI2 {
		e.Store().Untake(regNegCount)
		e.Store().Untake(regScratch)
	}
}
