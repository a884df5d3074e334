package c

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
)

// Toolchain names the C compiler CompileCaller/CompileCallee invoke.
// Defaults to "cc" (an empty value also resolves to "cc" at call time)
// so a host with only gcc or only clang on PATH as "cc" still works
// without configuration.
var Toolchain = "cc"

// CompileCaller compiles sourcePath to a position-independent object
// file at desiredLibName, to be linked into the pairing's shared object
// alongside the callee object and the fixed harness shim.
func (b *Backend) CompileCaller(sourcePath, desiredLibName string) (string, error) {
	return compile(sourcePath, desiredLibName)
}

// CompileCallee is the callee-side analogue of CompileCaller.
func (b *Backend) CompileCallee(sourcePath, desiredLibName string) (string, error) {
	return compile(sourcePath, desiredLibName)
}

func compile(sourcePath, desiredLibName string) (string, error) {
	toolchain := Toolchain
	if toolchain == "" {
		toolchain = "cc"
	}
	cmd := exec.Command(toolchain, "-c", "-fPIC", "-Wall", fmt.Sprintf("-O%d", buildEnv.OptLevel), "-o", desiredLibName, sourcePath)
	cmd.Env = append(os.Environ(), buildEnv.Environ()...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return "", &abicafe.CompileError{
			Toolchain: toolchain,
			Stdout:    stdout.String(),
			Stderr:    stderr.String(),
			ExitCode:  exitCode,
		}
	}
	return desiredLibName, nil
}
