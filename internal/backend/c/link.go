package c

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
	"github.com/abi-cafe/abicafe-go/internal/harness"
)

// LinkShared is also exposed as a method so internal/driver can reach it
// through a small local interface without importing this package's
// concrete type directly -- backends that have no equivalent fixed
// linking step (e.g. stub) simply don't implement it.
func (b *Backend) LinkShared(callerEntry, callerObj, calleeObj, outPath string) error {
	return LinkShared(callerEntry, callerObj, calleeObj, outPath)
}

// LinkShared renders the fixed harness shim for callerEntry, compiles it
// alongside callerObj and calleeObj, and links the three into one
// shared object at outPath -- the artifact internal/loader dlopens and
// resolves test_start from (spec section 4.5 step 4, 4.6).
func LinkShared(callerEntry, callerObj, calleeObj, outPath string) error {
	harnessSrc, err := harness.Render(callerEntry)
	if err != nil {
		return err
	}
	harnessPath := filepath.Join(filepath.Dir(outPath), "harness.c")
	if err := os.WriteFile(harnessPath, []byte(harnessSrc), 0644); err != nil {
		return err
	}

	toolchain := Toolchain
	if toolchain == "" {
		toolchain = "cc"
	}
	cmd := exec.Command(toolchain, "-shared", "-fPIC", fmt.Sprintf("-O%d", buildEnv.OptLevel), "-o", outPath, harnessPath, callerObj, calleeObj)
	cmd.Env = append(os.Environ(), buildEnv.Environ()...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return &abicafe.CompileError{
			Toolchain: toolchain,
			Stdout:    stdout.String(),
			Stderr:    stderr.String(),
			ExitCode:  exitCode,
		}
	}
	return nil
}
