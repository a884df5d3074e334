package driver

import (
	"os/exec"
	"runtime"
	"strings"
)

// HostTriple identifies the platform a run's compiled artifacts target,
// included in JSON reports so two runs can be told apart (supplemented
// feature: the original implementation prints this on every invocation).
// It prefers the compiler's own notion of the triple, since that's what
// actually determines the ABI the native toolchain step observes, and
// falls back to Go's GOOS/GOARCH when no C compiler is on PATH.
func HostTriple(toolchain string) string {
	if toolchain == "" {
		toolchain = "cc"
	}
	out, err := exec.Command(toolchain, "-dumpmachine").Output()
	if err == nil {
		if triple := strings.TrimSpace(string(out)); triple != "" {
			return triple
		}
	}
	return runtime.GOOS + "/" + runtime.GOARCH
}
