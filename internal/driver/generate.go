package driver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
	"github.com/abi-cafe/abicafe-go/internal/backend"
)

// Generate materializes the caller and callee sources for one (test,
// pairing) combination, returning their paths. Each side is generated by
// its own backend, so a Pair may legitimately name two different
// backends once more than one is registered (spec section 4.3's
// per-pairing generation step).
//
// A Test declaring the Handwritten convention (spec section 3) skips
// codegen entirely: its sources are the checked-in files under
// cfg's run.impls_root.handwritten tree, named the same way generated
// sources are, and Generate only verifies they exist. Every other Test
// is generated fresh under cfg's run.impls_root.generated tree.
func Generate(callerBackend, calleeBackend backend.Backend, test *abicafe.Test, cfg *abicafe.Config) (callerSrc, calleeSrc string, err error) {
	handwritten, err := test.IsHandwritten()
	if err != nil {
		return "", "", &abicafe.BuildError{Op: "generate", Err: err}
	}

	if handwritten {
		root := cfg.GetString("run.impls_root.handwritten")
		callerSrc = sourcePath(root, test.Name, callerBackend, "caller")
		calleeSrc = sourcePath(root, test.Name, calleeBackend, "callee")
		for _, p := range []string{callerSrc, calleeSrc} {
			if _, statErr := os.Stat(p); statErr != nil {
				return "", "", &abicafe.BuildError{Op: "generate", Err: &abicafe.HandwrittenSourceMissingError{Path: p}}
			}
		}
		return callerSrc, calleeSrc, nil
	}

	root := cfg.GetString("run.impls_root.generated")
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", "", &abicafe.BuildError{Op: "generate", Err: err}
	}

	callerSrc = sourcePath(root, test.Name, callerBackend, "caller")
	calleeSrc = sourcePath(root, test.Name, calleeBackend, "callee")

	if err := generateOne(callerBackend.GenerateCaller, test, callerSrc); err != nil {
		return "", "", &abicafe.BuildError{Op: "generate", Err: err}
	}
	if err := generateOne(calleeBackend.GenerateCallee, test, calleeSrc); err != nil {
		return "", "", &abicafe.BuildError{Op: "generate", Err: err}
	}
	return callerSrc, calleeSrc, nil
}

func sourcePath(root, testName string, b backend.Backend, side string) string {
	return filepath.Join(root, fmt.Sprintf("%s_%s_%s.%s", testName, b.Name(), side, b.SourceExt()))
}

func generateOne(emit func(w io.Writer, test *abicafe.Test) error, test *abicafe.Test, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return emit(f, test)
}
