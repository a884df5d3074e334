package reconcile

import (
	"github.com/abi-cafe/abicafe-go/internal/abicafe"
	"github.com/abi-cafe/abicafe-go/internal/observe"
)

// Reconcile walks the four finalized observation buffers in lockstep
// and produces a TestReport with one outcome per subtest. A non-nil
// error return means the pairing-level invariant from spec section 4.7
// step 1 was violated (TestCountMismatch) and is fatal for the whole
// pairing; reconciliation never gets a chance to run per subtest in
// that case.
//
// Buffers must already be finalized (observe.Buffer.Finalize called).
func Reconcile(test *abicafe.Test, callerIn, callerOut, calleeIn, calleeOut *observe.Buffer) (*abicafe.TestReport, error) {
	expected := len(test.Funcs)
	if callerIn.Len() != expected || callerOut.Len() != expected || calleeIn.Len() != expected || calleeOut.Len() != expected {
		return nil, &abicafe.TestCountMismatchError{
			Expected:  expected,
			CallerIn:  callerIn.Len(),
			CallerOut: callerOut.Len(),
			CalleeIn:  calleeIn.Len(),
			CalleeOut: calleeOut.Len(),
		}
	}

	report := &abicafe.TestReport{Test: *test, Results: make([]error, expected)}

	for i := 0; i < expected; i++ {
		report.Results[i] = reconcileFunc(i, callerIn.Funcs[i], callerOut.Funcs[i], calleeIn.Funcs[i], calleeOut.Funcs[i])
	}
	return report, nil
}

func reconcileFunc(funcIdx int, callerIn, callerOut, calleeIn, calleeOut [][][]byte) error {
	if len(callerIn) != len(calleeIn) {
		return &InputCountMismatch{FuncIdx: funcIdx, CallerVals: len(callerIn), CalleeVals: len(calleeIn)}
	}
	if len(callerOut) != len(calleeOut) {
		return &OutputCountMismatch{FuncIdx: funcIdx, CallerVals: len(callerOut), CalleeVals: len(calleeOut)}
	}

	for valIdx := range callerIn {
		if err := reconcileValue(funcIdx, valIdx, callerIn[valIdx], calleeIn[valIdx], true); err != nil {
			return err
		}
	}
	for valIdx := range callerOut {
		if err := reconcileValue(funcIdx, valIdx, callerOut[valIdx], calleeOut[valIdx], false); err != nil {
			return err
		}
	}
	return nil
}

func reconcileValue(funcIdx, valIdx int, callerFields, calleeFields [][]byte, isInput bool) error {
	if len(callerFields) != len(calleeFields) {
		if isInput {
			return &InputFieldCountMismatch{FuncIdx: funcIdx, ValIdx: valIdx, CallerFields: callerFields, CalleeFields: calleeFields}
		}
		return &OutputFieldCountMismatch{FuncIdx: funcIdx, ValIdx: valIdx, CallerFields: callerFields, CalleeFields: calleeFields}
	}
	for fieldIdx := range callerFields {
		if !bytesEqual(callerFields[fieldIdx], calleeFields[fieldIdx]) {
			if isInput {
				return &InputFieldMismatch{
					FuncIdx: funcIdx, ValIdx: valIdx, FieldIdx: fieldIdx,
					CallerBytes: callerFields[fieldIdx], CalleeBytes: calleeFields[fieldIdx],
				}
			}
			return &OutputFieldMismatch{
				FuncIdx: funcIdx, ValIdx: valIdx, FieldIdx: fieldIdx,
				CallerBytes: callerFields[fieldIdx], CalleeBytes: calleeFields[fieldIdx],
			}
		}
	}
	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
