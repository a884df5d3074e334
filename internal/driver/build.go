package driver

import (
	"fmt"
	"path/filepath"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
	"github.com/abi-cafe/abicafe-go/internal/backend"
	"github.com/abi-cafe/abicafe-go/internal/harness"
)

// linker is implemented by backends that know how to fold their own
// compiled artifact together with a second backend's and the fixed
// harness shim into one loadable shared object (spec section 4.5 step
// 4). A backend without a native toolchain, like stub, simply doesn't
// implement it.
type linker interface {
	LinkShared(callerEntry, callerObj, calleeObj, outPath string) error
}

// envConfigurable is implemented by backends whose toolchain invocations
// need the OUT_DIR/HOST/TARGET/OPT_LEVEL environment spec section 6
// mandates (c does; stub has nothing to propagate it to).
type envConfigurable interface {
	SetBuildEnv(abicafe.BuildEnv)
}

// Artifact is the loadable shared object produced by Build, plus the
// fixed symbol internal/loader resolves from it.
type Artifact struct {
	Path        string
	EntrySymbol string
}

// Build generates, compiles, and links one (test, pairing) combination,
// writing intermediate files under dir.
func Build(callerBackend, calleeBackend backend.Backend, test *abicafe.Test, cfg *abicafe.Config, dir string) (*Artifact, error) {
	callerSrc, calleeSrc, err := Generate(callerBackend, calleeBackend, test, cfg)
	if err != nil {
		return nil, err
	}

	env := abicafe.BuildEnv{
		OutDir:   dir,
		Host:     HostTriple(""),
		Target:   HostTriple(""),
		OptLevel: cfg.GetInt("build.opt_level"),
	}
	if ec, ok := callerBackend.(envConfigurable); ok {
		ec.SetBuildEnv(env)
	}
	if ec, ok := calleeBackend.(envConfigurable); ok {
		ec.SetBuildEnv(env)
	}

	callerObj, err := callerBackend.CompileCaller(callerSrc, objPath(dir, test.Name, callerBackend.Name(), "caller"))
	if err != nil {
		return nil, &abicafe.BuildError{Op: "compile", Err: err}
	}
	calleeObj, err := calleeBackend.CompileCallee(calleeSrc, objPath(dir, test.Name, calleeBackend.Name(), "callee"))
	if err != nil {
		return nil, &abicafe.BuildError{Op: "compile", Err: err}
	}

	l, ok := callerBackend.(linker)
	if !ok {
		return nil, &abicafe.BuildError{
			Op:  "link",
			Err: &abicafe.UnsupportedError{Backend: callerBackend.Name(), Feature: "linking a shared harness object"},
		}
	}

	entry := harness.EntrySymbol(test.Name, callerBackend.Name())
	outPath := filepath.Join(dir, fmt.Sprintf("%s_%s_%s.so", test.Name, callerBackend.Name(), calleeBackend.Name()))
	if err := l.LinkShared(entry, callerObj, calleeObj, outPath); err != nil {
		return nil, &abicafe.BuildError{Op: "link", Err: err}
	}
	return &Artifact{Path: outPath, EntrySymbol: "test_start"}, nil
}

func objPath(dir, testName, backendName, side string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s_%s.o", testName, backendName, side))
}
