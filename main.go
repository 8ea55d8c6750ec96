// Completion: 100% - CLI complete
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// fiwia emits fixed-width multi-precision integer arithmetic routines for
// x86-64: standalone SysV assembly, a C header declaring it, or a C header
// of equivalent GCC extended-asm functions.

func printUsageAndExit(msg string) {
	if msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}
	fmt.Fprintf(os.Stderr, `
USAGE: %s <ACTION> <WIDTH> [<FUNC_NAMES>]

Valid <ACTION>s:
 * gen_asm: print assembly to stdout
 * gen_c_header: print C header to stdout
 * gen_inline_asm: print C header with inline functions to stdout

<WIDTH> is the number of 64-bit words per big integer.
<FUNC_NAMES>, if given, is a comma-separated allow-list of routine names.
`, os.Args[0])
	os.Exit(2)
}

func main() {
	if len(os.Args) != 3 && len(os.Args) != 4 {
		printUsageAndExit("Wrong number of arguments.")
	}

	action := os.Args[1]
	n, err := strconv.Atoi(os.Args[2])
	if err != nil || n < 1 {
		printUsageAndExit("Invalid width.")
	}

	var gen func(io.Writer, []GeneratedFunc)
	isInlineAsm := false
	switch action {
	case "gen_asm":
		gen = genAsm
	case "gen_c_header":
		gen = genCHeader
	case "gen_inline_asm":
		gen = genInlineAsm
		isInlineAsm = true
	default:
		printUsageAndExit("Invalid action.")
	}

	funcs := generatedFuncs(n, isInlineAsm, hostCaps)
	if len(os.Args) == 4 {
		allowed := strings.Split(os.Args[3], ",")
		funcs = lo.Filter(funcs, func(f GeneratedFunc, _ int) bool {
			return lo.Contains(allowed, f.Name)
		})
	}

	gen(os.Stdout, funcs)
}
