// Completion: 100% - multiply templates complete, plain and BMI2 lowerings
package main

// Schoolbook multiplication building blocks. Each scalar step multiplies
// src[0..n) by one word, writing or accumulating into dst[0..n). Words at
// positions >= undefFrom are treated as undefined-but-zero and get a plain
// store instead of an accumulate.

// mulAux is the plain lowering: mulq leaves the low half in rax and the high
// half in rdx, and the previous high half rides along in regCarry. Returns
// the register holding the carry out of the last word (the caller must
// untake it) unless dropLastCarry is set.
func mulAux(e Emitter, n, undefFrom int, src PointerReg, mulby Operand, dst PointerReg, zero Operand, dropLastCarry bool) (RealReg, bool) {
	rax := e.Store().TakeByName("rax", true)
	rdx := e.Store().TakeByName("rdx", true)

	regCarry := e.Store().Take(true)

	for i := 0; i < n; i++ {
		dropFollowingCarry := dropLastCarry && i+1 == n

		if i > 0 {
			emitf(e, "movq %s, %s", rdx, regCarry)
		}

		emitf(e, "movq %s, %s", mulby, rax)

		if dropFollowingCarry {
			emitf(e, "imulq %s, %s", src.Displace(i), rax)
		} else {
			emitf(e, "mulq %s", src.Displace(i))
		}

		if i > 0 {
			emitf(e, "addq %s, %s", regCarry, rax)
			if !dropFollowingCarry {
				emitf(e, "adcq %s, %s", zero, rdx)
			}
		}

		if i >= undefFrom {
			emitf(e, "movq %s, %s", rax, dst.Displace(i))
		} else {
			emitf(e, "addq %s, %s", rax, dst.Displace(i))
			if !dropFollowingCarry {
				emitf(e, "adcq %s, %s", zero, rdx)
			}
		}
	}

	e.Store().Untake(regCarry)
	e.Store().Untake(rax)
	if dropLastCarry {
		e.Store().Untake(rdx)
		return RealReg{}, false
	}
	return rdx, true
}

// mulAuxBMI2 is the mulx lowering. mulx reads rdx implicitly (the caller has
// already moved the multiplier there) and writes a lo/hi pair without
// touching flags, so the chain rotates three registers: each step's high
// half becomes the next step's carry. cyMeaningful tracks whether CF is part
// of the chain right now, choosing addq vs adcq.
//
// When n is odd the hi/carry pair is pre-swapped so the final rotation lands
// the carry in the register the caller handed in; callers rely on getting
// that exact register identity back.
func mulAuxBMI2(e Emitter, n, undefFrom int, src, dst PointerReg, zero Operand, dropLastCarry bool, regCarry Reg) (Reg, bool) {
	if regCarry == nil {
		regCarry = e.Store().Take(true)
	}
	regLo := e.Store().Take(true)
	var regHi Reg = e.Store().Take(true)

	if n%2 == 1 {
		regHi, regCarry = regCarry, regHi
	}

	cyMeaningful := false

	for i := 0; i < n; i++ {
		dropFollowingCarry := dropLastCarry && i+1 == n

		emitf(e, "mulxq %s, %s, %s", src.Displace(i), regLo, regHi)

		if i > 0 {
			insn := "addq"
			if cyMeaningful {
				insn = "adcq"
			}
			emitf(e, "%s %s, %s", insn, regCarry, regLo)
			cyMeaningful = true
		}

		if i >= undefFrom {
			emitf(e, "movq %s, %s", regLo, dst.Displace(i))
		} else {
			if cyMeaningful && !dropFollowingCarry {
				emitf(e, "adcq %s, %s", zero, regHi)
			}
			emitf(e, "addq %s, %s", regLo, dst.Displace(i))
			cyMeaningful = true
		}

		regHi, regCarry = regCarry, regHi
	}

	e.Store().Untake(regLo)
	e.Store().Untake(mustRealReg(regHi))
	if dropLastCarry {
		e.Store().Untake(mustRealReg(regCarry))
		return nil, cyMeaningful
	}
	return regCarry, cyMeaningful
}

// mulAuxAuto multiplies by a word loaded from memory, copying it into a
// register first unless the product is a single word.
func mulAuxAuto(e Emitter, n, undefFrom int, src PointerReg, b Operand, dst PointerReg, zero Operand, dropLastCarry bool) (RealReg, bool) {
	if n == 1 {
		return mulAux(e, n, undefFrom, src, b, dst, zero, dropLastCarry)
	}
	regMulby := e.Store().Take(true)
	emitf(e, "movq %s, %s", b, regMulby)
	carry, ok := mulAux(e, n, undefFrom, src, regMulby, dst, zero, dropLastCarry)
	e.Store().Untake(regMulby)
	return carry, ok
}

// longMulStep runs one scalar multiply and settles its final carry into
// dst[n].
func longMulStep(e Emitter, n, undefFrom int, src PointerReg, b Operand, dst PointerReg, zero Operand) {
	lastCarry, _ := mulAuxAuto(e, n, undefFrom, src, b, dst, zero, false)

	if n >= undefFrom {
		emitf(e, "movq %s, %s", lastCarry, dst.Displace(n))
	} else {
		emitf(e, "addq %s, %s", lastCarry, dst.Displace(n))
	}

	e.Store().Untake(lastCarry)
}

func longMulStepBMI2(e Emitter, n, undefFrom int, src, dst PointerReg, zero Operand) {
	lastCarry, cyMeaningful := mulAuxBMI2(e, n, undefFrom, src, dst, zero, false, nil)

	if n >= undefFrom {
		if cyMeaningful {
			emitf(e, "adcq %s, %s", zero, lastCarry)
		}
		emitf(e, "movq %s, %s", lastCarry, dst.Displace(n))
	} else {
		insn := "addq"
		if cyMeaningful {
			insn = "adcq"
		}
		emitf(e, "%s %s, %s", insn, lastCarry, dst.Displace(n))
	}

	e.Store().Untake(mustRealReg(lastCarry))
}

// genMul multiplies a[0..n) by b[0..m), writing the full product into
// dst[0..n+m).
func genMul(e Emitter, n, m int) {
	if n < m {
		panic(internalErrorf("schoolbook multiply expects n >= m, got n=%d m=%d", n, m))
	}

	e.AddFixedReg("rax")
	e.AddFixedReg("rdx")

	regA := e.TakeArgReg(0, false)
	regB := e.TakeArgReg(1, false)
	regDst := e.TakeArgReg(2, false)

	a := PointerReg{Reg: regA}
	b := PointerReg{Reg: regB}
	dst := PointerReg{Reg: regDst}

	zero := Lit("$0")

	for i := 0; i < m; i++ {
		undefFrom := 0
		if i > 0 {
			undefFrom = n
		}
		longMulStep(e, n, undefFrom, a, b.Displace(i), dst.Displace(i), zero)
	}
}

func genMulBMI2(e Emitter, n, m int) {
	if n < m {
		panic(internalErrorf("schoolbook multiply expects n >= m, got n=%d m=%d", n, m))
	}

	e.AddFixedReg("rdx")

	regA := e.TakeArgReg(0, false)
	regB := e.TakeArgReg(1, false)
	regDst := e.TakeArgReg(2, false)

	a := PointerReg{Reg: regA}
	b := PointerReg{Reg: regB}
	dst := PointerReg{Reg: regDst}

	rdx := e.Store().TakeByName("rdx", true)

	zero := Lit("$0")

	for i := 0; i < m; i++ {
		undefFrom := 0
		if i > 0 {
			undefFrom = n
		}
		emitf(e, "movq %s, %s", b.Displace(i), rdx)
		longMulStepBMI2(e, n, undefFrom, a, dst.Displace(i), zero)
	}

	e.Store().Untake(rdx)
}

// genMulLo keeps only the low n words of the n-by-n product: step i
// multiplies n-i words and drops its topmost carry.
func genMulLo(e Emitter, n int) {
	e.AddFixedReg("rax")
	e.AddFixedReg("rdx")

	regA := e.TakeArgReg(0, false)
	regB := e.TakeArgReg(1, false)
	regDst := e.TakeArgReg(2, false)

	a := PointerReg{Reg: regA}
	b := PointerReg{Reg: regB}
	dst := PointerReg{Reg: regDst}

	zero := Lit("$0")

	for i := 0; i < n; i++ {
		undefFrom := 0
		if i > 0 {
			undefFrom = n
		}
		mulAuxAuto(e, n-i, undefFrom, a, b.Displace(i), dst.Displace(i), zero, true)
	}
}

func genMulLoBMI2(e Emitter, n int) {
	e.AddFixedReg("rdx")

	regA := e.TakeArgReg(0, false)
	regB := e.TakeArgReg(1, false)
	regDst := e.TakeArgReg(2, false)

	a := PointerReg{Reg: regA}
	b := PointerReg{Reg: regB}
	dst := PointerReg{Reg: regDst}

	rdx := e.Store().TakeByName("rdx", true)

	for i := 0; i < n; i++ {
		undefFrom := 0
		if i > 0 {
			undefFrom = n
		}
		emitf(e, "movq %s, %s", b.Displace(i), rdx)
		mulAuxBMI2(e, n-i, undefFrom, a, dst.Displace(i), Lit("$0"), true, nil)
	}

	e.Store().Untake(rdx)
}

// genMulQ multiplies src[0..n) by the word m into dst[0..n) and returns the
// carry out of the last word.
func genMulQ(e Emitter, n int) {
	e.AddFixedReg("rax")
	e.AddFixedReg("rdx")

	regSrc := e.TakeArgReg(0, false)
	regM := e.TakeArgReg(1, false)
	regDst := e.TakeArgReg(2, false)

	src := PointerReg{Reg: regSrc}
	dst := PointerReg{Reg: regDst}

	lastCarry, _ := mulAux(e, n, 0, src, regM, dst, Lit("$0"), false)

	e.WriteRetval(lastCarry)
}

// genMulQBMI2 steers the multiplier into rdx for mulx and accumulates the
// final carry directly in the result register, which must not alias any
// input.
func genMulQBMI2(e Emitter, n int) {
	e.AddFixedReg("rdx")
	e.SetNArgs(3)

	regSrc := e.TakeArgReg(0, false)
	e.TakeArgRegInto(1, false, "rdx")
	regDst := e.TakeArgReg(2, false)

	regResult := e.TakeRetvalReg(false)

	src := PointerReg{Reg: regSrc}
	dst := PointerReg{Reg: regDst}

	lastCarry, cyMeaningful := mulAuxBMI2(e, n, 0, src, dst, Lit("$0"), false, regResult)

	if lastCarry.String() != regResult.String() {
		panic(internalErrorf("multiply ring did not land the carry in the result register"))
	}

	if cyMeaningful {
		emitf(e, "adcq $0, %s", lastCarry)
	}
}
