// Completion: 100% - negation template complete
package main

// genNegate writes the two's complement of a[0..n) into b[0..n) and returns
// ~0 unless a was zero. negq on the first word seeds the borrow chain; the
// remaining words go through movq $0 / sbbq, which leaves CF intact.
func genNegate(e Emitter, n int) {
	regA := e.TakeArgReg(0, false)
	regB := e.TakeArgReg(1, false)

	tmp := e.Store().Take(true)

	a := PointerReg{Reg: regA}
	b := PointerReg{Reg: regB}

	for i := 0; i < n; i++ {
		if i > 0 {
			emitf(e, "movq $0, %s", tmp)
			emitf(e, "sbbq %s, %s", a.Displace(i), tmp)
		} else {
			emitf(e, "movq %s, %s", a.Displace(i), tmp)
			emitf(e, "negq %s", tmp)
		}
		emitf(e, "movq %s, %s", tmp, b.Displace(i))
	}

	ret := e.TakeRetvalReg(true)
	emitf(e, "sbbq %s, %s", ret, ret)

	e.Store().Untake(tmp)
}
