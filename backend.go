// Completion: 100% - output drivers complete
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
)

// The three output drivers. Each iterates the routine catalog, wraps every
// routine in its format's banners, and runs the generator against a fresh
// emitter.

// genAsm prints standalone GNU assembly: one global, 32-byte-aligned
// function per routine, ending in retq. The label counter is shared across
// the whole run so local labels stay unique within the file.
func genAsm(w io.Writer, funcs []GeneratedFunc) {
	fmt.Fprintln(w, "# Auto-generated; do not edit.")
	labelCounter := 0
	for _, f := range funcs {
		fmt.Fprintln(w)
		fmt.Fprintf(w, ".global %s\n", f.Name)
		fmt.Fprintf(w, ".type %s, @function\n", f.Name)
		fmt.Fprintln(w, ".align 32")
		fmt.Fprintf(w, "%s:\n", f.Name)
		e := NewSysvEmitter(w, &labelCounter)
		e.EmitPrologue()
		f.Callback(e)
		e.EmitEpilogue()
		fmt.Fprintln(w, "retq")
	}
}

func parseProto(proto string) ([]string, string) {
	proto = strings.ReplaceAll(proto, " ", "")
	parts := strings.SplitN(proto, "->", 2)
	if len(parts) != 2 {
		panic(internalErrorf("malformed prototype %q", proto))
	}
	return strings.Split(parts[0], ","), parts[1]
}

func protoToCType(s string) string {
	s = strings.ReplaceAll(s, "@", " const ")
	s = strings.ReplaceAll(s, "#", "uint64_t")
	return strings.TrimSpace(s)
}

// genCHeader prints extern declarations for the standalone assembly.
func genCHeader(w io.Writer, funcs []GeneratedFunc) {
	fmt.Fprint(w, "// Auto-generated; do not edit.\n#pragma once\n#include <stdint.h>\n\n")
	for _, f := range funcs {
		params, retval := parseProto(f.Proto)
		cParams := lo.Map(params, func(p string, _ int) string { return protoToCType(p) })
		fmt.Fprintf(w, "extern %s %s(%s);\n", protoToCType(retval), f.Name, strings.Join(cParams, ", "))
	}
}

// genInlineAsm prints a header of full function definitions whose bodies are
// extended-asm blocks. asm_attrs comes from the user-supplied asm_config.h.
func genInlineAsm(w io.Writer, funcs []GeneratedFunc) {
	fmt.Fprintln(w, "// Auto-generated; do not edit.")
	fmt.Fprintln(w, "#pragma once")
	fmt.Fprintln(w, "#include <stdint.h>")
	fmt.Fprintln(w, `#include "asm_config.h"`)
	for _, f := range funcs {
		params, retval := parseProto(f.Proto)
		cParams := make([]string, len(params))
		for i, p := range params {
			cParams[i] = fmt.Sprintf("%s arg%d", protoToCType(p), i)
		}
		cRetval := protoToCType(retval)
		isVoid := cRetval == "void"

		fmt.Fprintln(w)
		fmt.Fprintf(w, "asm_attrs %s %s(%s)\n", cRetval, f.Name, strings.Join(cParams, ", "))
		fmt.Fprintln(w, "{")
		if !isVoid {
			fmt.Fprintf(w, "    %s ret;\n", cRetval)
		}

		e := NewInlineAsmEmitter(w)
		e.EmitPrologue()
		f.Callback(e)
		e.EmitEpilogue()

		if !isVoid {
			fmt.Fprintln(w, "    return ret;")
		}
		fmt.Fprintln(w, "}")
	}
}
