// Package reconcile implements the reconciliation engine from spec
// section 4.7: a lockstep structural diff across the four observation
// buffers that emits the first failure per subtest, in priority order,
// so the most fundamental disagreement is surfaced rather than a
// downstream symptom of it.
package reconcile

import "fmt"

// InputCountMismatch reports that the caller and callee disagree on how
// many input values a subtest had.
type InputCountMismatch struct {
	FuncIdx             int
	CallerVals, CalleeVals int
}

func (e *InputCountMismatch) Error() string {
	return fmt.Sprintf("func %d: input count mismatch: caller saw %d, callee saw %d", e.FuncIdx, e.CallerVals, e.CalleeVals)
}

// OutputCountMismatch is the output-side analogue of InputCountMismatch.
type OutputCountMismatch struct {
	FuncIdx               int
	CallerVals, CalleeVals int
}

func (e *OutputCountMismatch) Error() string {
	return fmt.Sprintf("func %d: output count mismatch: caller saw %d, callee saw %d", e.FuncIdx, e.CallerVals, e.CalleeVals)
}

// InputFieldCountMismatch reports that the caller and callee disagree
// on how many scalar fields one input value decomposed into.
type InputFieldCountMismatch struct {
	FuncIdx, ValIdx        int
	CallerFields, CalleeFields [][]byte
}

func (e *InputFieldCountMismatch) Error() string {
	return fmt.Sprintf(
		"func %d input %d: field count mismatch: caller %#02x, callee %#02x",
		e.FuncIdx, e.ValIdx, e.CallerFields, e.CalleeFields,
	)
}

// OutputFieldCountMismatch is the output-side analogue.
type OutputFieldCountMismatch struct {
	FuncIdx, ValIdx            int
	CallerFields, CalleeFields [][]byte
}

func (e *OutputFieldCountMismatch) Error() string {
	return fmt.Sprintf(
		"func %d output %d: field count mismatch: caller %#02x, callee %#02x",
		e.FuncIdx, e.ValIdx, e.CallerFields, e.CalleeFields,
	)
}

// InputFieldMismatch reports that a single field's raw bytes disagreed
// between the caller's and callee's view of an input.
type InputFieldMismatch struct {
	FuncIdx, ValIdx, FieldIdx int
	CallerBytes, CalleeBytes  []byte
}

func (e *InputFieldMismatch) Error() string {
	return fmt.Sprintf(
		"func %d input %d field %d mismatch: caller %02x, callee %02x",
		e.FuncIdx, e.ValIdx, e.FieldIdx, e.CallerBytes, e.CalleeBytes,
	)
}

// OutputFieldMismatch is the output-side analogue.
type OutputFieldMismatch struct {
	FuncIdx, ValIdx, FieldIdx int
	CallerBytes, CalleeBytes  []byte
}

func (e *OutputFieldMismatch) Error() string {
	return fmt.Sprintf(
		"func %d output %d field %d mismatch: caller %02x, callee %02x",
		e.FuncIdx, e.ValIdx, e.FieldIdx, e.CallerBytes, e.CalleeBytes,
	)
}
