package driver

import (
	log "github.com/sirupsen/logrus"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
	"github.com/abi-cafe/abicafe-go/internal/loader"
	"github.com/abi-cafe/abicafe-go/internal/observe"
	"github.com/abi-cafe/abicafe-go/internal/observe/ffi"
	"github.com/abi-cafe/abicafe-go/internal/reconcile"
)

var logger = log.StandardLogger()

// SetLogger points Run's debug diagnostics at l instead of the standard
// logger. Called once from cmd/abicafe/main.go with the logger built by
// internal/diagnostics.
func SetLogger(l *log.Logger) { logger = l }

// Run dlopens artifact, invokes its test_start entry once with four
// fresh observation buffers, and reconciles the result against test
// (spec section 4.6, 4.7). The shared object stays mapped until
// reconciliation has copied every byte it needs, per spec section 5.
func Run(artifact *Artifact, test *abicafe.Test) (*abicafe.TestReport, error) {
	lib, err := loader.Open(artifact.Path)
	if err != nil {
		return nil, &abicafe.BuildError{Op: "load", Err: &abicafe.LoadError{Path: artifact.Path, Err: err}}
	}
	defer lib.Close()

	fn, err := lib.Symbol(artifact.EntrySymbol)
	if err != nil {
		return nil, &abicafe.BuildError{Op: "load", Err: &abicafe.LoadError{Path: artifact.Path, Err: err}}
	}

	callerIn, callerOut := observe.New(), observe.New()
	calleeIn, calleeOut := observe.New(), observe.New()

	ffi.Invoke(fn, callerIn, callerOut, calleeIn, calleeOut)

	callerIn.Finalize()
	callerOut.Finalize()
	calleeIn.Finalize()
	calleeOut.Finalize()

	report, err := reconcile.Reconcile(test, callerIn, callerOut, calleeIn, calleeOut)
	if err != nil {
		return nil, &abicafe.BuildError{Op: "run", Err: err}
	}

	if logger.IsLevelEnabled(log.DebugLevel) {
		logMismatchedFields(test, report, callerIn, callerOut, calleeIn, calleeOut)
	}
	return report, nil
}

// logMismatchedFields re-walks every failed subtest without the
// reconciler's first-failure short-circuit, logging the full bitmap of
// disagreeing field positions instead of just the one Reconcile stopped
// at. This only runs at debug level since it revisits buffers already
// reconciled.
func logMismatchedFields(test *abicafe.Test, report *abicafe.TestReport, callerIn, callerOut, calleeIn, calleeOut *observe.Buffer) {
	for i, result := range report.Results {
		if result == nil {
			continue
		}
		fs := reconcile.AllMismatches(callerIn.Funcs[i], callerOut.Funcs[i], calleeIn.Funcs[i], calleeOut.Funcs[i])
		total := 0
		for _, v := range callerIn.Funcs[i] {
			total += len(v)
		}
		for _, v := range callerOut.Funcs[i] {
			total += len(v)
		}
		var positions []uint
		for p := uint(0); p < uint(total); p++ {
			if fs.Test(p) {
				positions = append(positions, p)
			}
		}
		logger.WithFields(log.Fields{
			"test":       test.Name,
			"func":       test.Funcs[i].Name,
			"mismatches": fs.Count(),
			"positions":  positions,
		}).Debug("subtest failed reconciliation")
	}
}
