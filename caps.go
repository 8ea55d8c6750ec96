// Completion: 100% - capability probing complete with env override and probe fallback
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/xyproto/env/v2"
	"golang.org/x/sys/cpu"
)

// Host capability probing. A capability name like "bmi2" resolves through
// three layers: the FIWIA_CAP_<NAME> environment override, the CPU feature
// flags the Go runtime already knows, and finally a small C program compiled
// with $CC and run on this machine.

// capProbeSource is the fallback probe. __builtin_cpu_supports understands
// the same capability names we use.
const capProbeSource = `#include <stdio.h>

int main(int argc, char **argv)
{
    if (argc != 2) {
        fprintf(stderr, "usage: %s <capability>\n", argv[0]);
        return 2;
    }
    __builtin_cpu_init();
    if (__builtin_cpu_supports(argv[1]))
        return 0;
    return 1;
}
`

// Caps answers capability queries, memoizing each answer so a process probes
// at most once per name. The lookup function is injectable so tests never
// spawn a compiler.
type Caps struct {
	lookup func(name string) (bool, error)
	cache  map[string]bool
}

func NewCaps(lookup func(name string) (bool, error)) *Caps {
	return &Caps{
		lookup: lookup,
		cache:  make(map[string]bool),
	}
}

// hostCaps is the process-wide probe instance.
var hostCaps = NewCaps(probeHost)

// Has reports whether the host has the named capability. A hard probe
// failure (the probe cannot even be compiled) aborts the generator.
func (c *Caps) Has(name string) bool {
	if v, ok := c.cache[name]; ok {
		return v
	}
	result, err := c.resolve(name)
	if err != nil {
		panic(fmt.Errorf("capability probe for %q failed: %w", name, err))
	}
	c.cache[name] = result
	return result
}

func (c *Caps) resolve(name string) (bool, error) {
	override := env.Str("FIWIA_CAP_" + strings.ToUpper(name))
	if override != "" {
		v, err := strconv.Atoi(override)
		if err != nil {
			return false, fmt.Errorf("bad override FIWIA_CAP_%s=%q: %w", strings.ToUpper(name), override, err)
		}
		return v != 0, nil
	}
	return c.lookup(name)
}

func probeHost(name string) (bool, error) {
	if runtime.GOARCH == "amd64" {
		switch name {
		case "bmi2":
			return cpu.X86.HasBMI2, nil
		case "adx":
			return cpu.X86.HasADX, nil
		case "avx2":
			return cpu.X86.HasAVX2, nil
		case "sse4.1":
			return cpu.X86.HasSSE41, nil
		}
	}
	return probeWithCompiler(name)
}

// probeWithCompiler compiles and runs the embedded probe. A nonzero exit of
// the probe binary is a valid answer (feature absent); failing to compile it
// is not.
func probeWithCompiler(name string) (bool, error) {
	dir, err := os.MkdirTemp("", "fiwia-cap-*")
	if err != nil {
		return false, err
	}
	defer os.RemoveAll(dir)

	srcPath := filepath.Join(dir, "check_cap.c")
	binPath := filepath.Join(dir, "check_cap")
	if err := os.WriteFile(srcPath, []byte(capProbeSource), 0o644); err != nil {
		return false, err
	}

	cc := env.Str("CC", "gcc")
	compile := exec.Command(cc, srcPath, "-o", binPath)
	compile.Stderr = os.Stderr
	if err := compile.Run(); err != nil {
		return false, fmt.Errorf("cannot compile capability probe with %s: %w", cc, err)
	}

	probe := exec.Command(binPath, name)
	probe.Stderr = os.Stderr
	err = probe.Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, err
}
