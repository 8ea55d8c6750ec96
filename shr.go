// Completion: 100% - right-shift template complete, baseline and BMI2 paths
package main

// doShr lowers one word of a right shift by 0..63 bits. The baseline path
// steers the count through cl and merges the donor word with shrdq; the BMI2
// path uses shrxq plus an opposite-direction shlxq by the negated count,
// OR-ing the two pieces. With no donor (the topmost word) a signed shift
// becomes sarq/sarxq.
func doShr(e Emitter, src Operand, regDst RealReg, regDonor *RealReg, regCount Reg, regNegCount, regScratch RealReg, isSigned, useBMI2 bool) {
	baseInsn := "shr"
	if isSigned && regDonor == nil {
		baseInsn = "sar"
	}
	if useBMI2 {
		emitf(e, "%sxq %s, %s, %s", baseInsn, regCount, src, regDst)
		if regDonor != nil {
			emitf(e, "shlxq %s, %s, %s", regNegCount, *regDonor, regScratch)
			emitf(e, "orq %s, %s", regScratch, regDst)
		}
	} else {
		if src.String() != regDst.String() {
			emitf(e, "movq %s, %s", src, regDst)
		}
		if regDonor != nil {
			emitf(e, "shrdq %%cl, %s, %s", *regDonor, regDst)
		} else {
			emitf(e, "%sq %%cl, %s", baseInsn, regDst)
		}
	}
}

// genShr shifts a[0..n) right by a runtime count of 1..63 bits into dst,
// walking the words upward so two temporaries can ping-pong the current
// word and its donor.
func genShr(e Emitter, n int, isSigned, useBMI2 bool) {
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

	for i := 0; i < n; i++ {
		var curSrc Operand = regTmp1
		if i == 0 {
			curSrc = a.Displace(i)
		}

		var curDonor *RealReg
		if i != n-1 {
			emitf(e, "movq %s, %s", a.Displace(i+1), regTmp2)
			curDonor = &regTmp2
		}

		doShr(e, curSrc, regTmp1, curDonor, regCount, regNegCount, regScratch, isSigned, useBMI2)

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
