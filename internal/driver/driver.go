package driver

import (
	"path/filepath"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
	"github.com/abi-cafe/abicafe-go/internal/backend"
)

// RunResult is one pairing's outcome for one Test: either a TestReport,
// or an error that aborted the whole pairing before reconciliation could
// run (spec section 7's BuildError taxonomy). An abicafe.UnsupportedError
// means the pairing was skipped, not failed.
type RunResult struct {
	Pair   Pair
	Report *abicafe.TestReport
	Err    error
}

// RunTest builds and runs test under every pairing in pairs, returning
// one RunResult per pairing. A pairing whose backend can't express a
// feature the test needs is recorded with its UnsupportedError rather
// than aborting the rest of the matrix.
func RunTest(reg *backend.Registry, pairs []Pair, test *abicafe.Test, cfg *abicafe.Config) []RunResult {
	outDir := cfg.GetString("build.out_dir")
	results := make([]RunResult, 0, len(pairs))
	for _, pair := range pairs {
		callerBackend, ok := reg.Get(pair.Caller)
		if !ok {
			results = append(results, RunResult{Pair: pair, Err: &abicafe.UnsupportedError{Backend: pair.Caller, Feature: "unregistered backend"}})
			continue
		}
		calleeBackend, ok := reg.Get(pair.Callee)
		if !ok {
			results = append(results, RunResult{Pair: pair, Err: &abicafe.UnsupportedError{Backend: pair.Callee, Feature: "unregistered backend"}})
			continue
		}

		pairDir := filepath.Join(outDir, test.Name, pair.Caller+"_"+pair.Callee)
		artifact, err := Build(callerBackend, calleeBackend, test, cfg, pairDir)
		if err != nil {
			results = append(results, RunResult{Pair: pair, Err: err})
			continue
		}

		report, err := Run(artifact, test)
		results = append(results, RunResult{Pair: pair, Report: report, Err: err})
	}
	return results
}
