// Completion: 100% - routine catalog complete
package main

import "fmt"

// GeneratedFunc describes one exported routine: its C-level name, its
// compact prototype, and the generator that renders its body against an
// emitter.
//
// The prototype grammar is a comma list of parameter types, then "->" and a
// return type, where:
//   - '#' is a 64-bit word (uint64_t),
//   - '#*' a pointer to word,
//   - '@#*' a constant pointer to word,
//   - 'void' a missing value.
type GeneratedFunc struct {
	Name     string
	Proto    string
	Callback func(Emitter)
}

const funcPrefix = "asm"

// generatedFuncs lists every export for word count n. The inline backend can
// safely hold more temporaries (allocation is constraint-solved), so the
// masked add/sub and word-shift group sizes widen there.
func generatedFuncs(n int, isInlineAsm bool, caps *Caps) []GeneratedFunc {
	addSubMaskedM := 4
	shiftWordsM := 4
	if isInlineAsm {
		addSubMaskedM = 8
		shiftWordsM = 8
	}

	name := func(op string) string {
		return fmt.Sprintf("%s_%s_%d", funcPrefix, op, n)
	}

	return []GeneratedFunc{
		{
			Name:     name("add"),
			Proto:    "#*, @#* -> #",
			Callback: func(e Emitter) { genAddSub(e, n, OpAdd) },
		},
		{
			Name:     name("sub"),
			Proto:    "#*, @#* -> #",
			Callback: func(e Emitter) { genAddSub(e, n, OpSub) },
		},
		{
			Name:     name("add_masked"),
			Proto:    "#*, @#*, # -> #",
			Callback: func(e Emitter) { genAddSubMasked(e, n, OpAdd, addSubMaskedM) },
		},
		{
			Name:     name("sub_masked"),
			Proto:    "#*, @#*, # -> #",
			Callback: func(e Emitter) { genAddSubMasked(e, n, OpSub, addSubMaskedM) },
		},
		{
			Name:     name("negate"),
			Proto:    "@#*, #* -> #",
			Callback: func(e Emitter) { genNegate(e, n) },
		},

		{
			Name:     name("add_q"),
			Proto:    "#*, # -> #",
			Callback: func(e Emitter) { genAddSubScalar(e, n, OpAdd, false) },
		},
		{
			Name:     name("sub_q"),
			Proto:    "#*, # -> #",
			Callback: func(e Emitter) { genAddSubScalar(e, n, OpSub, false) },
		},

		{
			Name:     name("add_q_leaky"),
			Proto:    "#*, # -> #",
			Callback: func(e Emitter) { genAddSubScalar(e, n, OpAdd, true) },
		},
		{
			Name:     name("sub_q_leaky"),
			Proto:    "#*, # -> #",
			Callback: func(e Emitter) { genAddSubScalar(e, n, OpSub, true) },
		},

		{
			Name:     name("cmplt"),
			Proto:    "@#*, @#* -> #",
			Callback: func(e Emitter) { genCmpLt(e, n, false) },
		},
		{
			Name:     name("cmple"),
			Proto:    "@#*, @#* -> #",
			Callback: func(e Emitter) { genCmpLe(e, n, false) },
		},
		{
			Name:     name("S_cmplt"),
			Proto:    "@#*, @#* -> #",
			Callback: func(e Emitter) { genCmpLt(e, n, true) },
		},
		{
			Name:     name("S_cmple"),
			Proto:    "@#*, @#* -> #",
			Callback: func(e Emitter) { genCmpLe(e, n, true) },
		},
		{
			Name:     name("cmpeq"),
			Proto:    "@#*, @#* -> #",
			Callback: func(e Emitter) { genCmpEq(e, n) },
		},
		{
			Name:  name("mul_q"),
			Proto: "@#*, #, #* -> #",
			Callback: func(e Emitter) {
				if caps.Has("bmi2") {
					genMulQBMI2(e, n)
				} else {
					genMulQ(e, n)
				}
			},
		},
		{
			Name:     name("div_q"),
			Proto:    "@#*, #, #* -> #",
			Callback: func(e Emitter) { genDivQ(e, n, "div") },
		},
		{
			Name:     name("mod_q"),
			Proto:    "@#*, # -> #",
			Callback: func(e Emitter) { genDivQ(e, n, "mod") },
		},
		{
			Name:  name("mul_lo"),
			Proto: "@#*, @#*, #* -> void",
			Callback: func(e Emitter) {
				if caps.Has("bmi2") {
					genMulLoBMI2(e, n)
				} else {
					genMulLo(e, n)
				}
			},
		},
		{
			Name:  name("mul"),
			Proto: "@#*, @#*, #* -> void",
			Callback: func(e Emitter) {
				if caps.Has("bmi2") {
					genMulBMI2(e, n, n)
				} else {
					genMul(e, n, n)
				}
			},
		},

		{
			Name:     name("shr_nz"),
			Proto:    "@#*, #, #* -> void",
			Callback: func(e Emitter) { genShr(e, n, false, caps.Has("bmi2")) },
		},
		{
			Name:     name("S_shr_nz"),
			Proto:    "@#*, #, #* -> void",
			Callback: func(e Emitter) { genShr(e, n, true, caps.Has("bmi2")) },
		},
		{
			Name:     name("shl_nz"),
			Proto:    "@#*, #, #* -> void",
			Callback: func(e Emitter) { genShl(e, n, caps.Has("bmi2")) },
		},

		{
			Name:     name("shr"),
			Proto:    "@#*, #, #* -> void",
			Callback: func(e Emitter) { genShr(e, n, false, false) },
		},
		{
			Name:     name("S_shr"),
			Proto:    "@#*, #, #* -> void",
			Callback: func(e Emitter) { genShr(e, n, true, false) },
		},
		{
			Name:     name("shl"),
			Proto:    "@#*, #, #* -> void",
			Callback: func(e Emitter) { genShl(e, n, false) },
		},

		{
			Name:     name("shr_words"),
			Proto:    "@#*, #, #* -> void",
			Callback: func(e Emitter) { genShiftWords(e, n, "right", false, shiftWordsM) },
		},
		{
			Name:     name("S_shr_words"),
			Proto:    "@#*, #, #* -> void",
			Callback: func(e Emitter) { genShiftWords(e, n, "right", true, shiftWordsM) },
		},
		{
			Name:     name("shl_words"),
			Proto:    "@#*, #, #* -> void",
			Callback: func(e Emitter) { genShiftWords(e, n, "left", false, shiftWordsM) },
		},
	}
}
