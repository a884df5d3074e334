package reconcile

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
	"github.com/abi-cafe/abicafe-go/internal/observe"
)

// writeVal writes every leaf of v to buf as its own field, matching the
// write-back contract emitters must follow (spec section 4.4), then
// closes the value.
func writeVal(buf *observe.Buffer, v abicafe.Val) {
	for _, leaf := range v.Leaves() {
		buf.WriteField(leaf.Bytes)
	}
	buf.FinishedVal()
}

func TestReconcile_Scenario1_SingleInt32InputPasses(t *testing.T) {
	test := &abicafe.Test{
		Name: "i32",
		Funcs: []abicafe.Func{
			{
				Name:        "i32_val_in",
				Conventions: []abicafe.CallingConvention{abicafe.ConventionC},
				Inputs:      []abicafe.Val{abicafe.NewInt(abicafe.Int32, true, big.NewInt(0x1a2b3c4d))},
			},
		},
	}

	callerIn, callerOut, calleeIn, calleeOut := observe.New(), observe.New(), observe.New(), observe.New()
	writeVal(callerIn, test.Funcs[0].Inputs[0])
	writeVal(calleeIn, test.Funcs[0].Inputs[0])
	observe.FinishedFunc(callerIn, calleeIn)
	observe.FinishedFunc(callerOut, calleeOut)
	callerIn.Finalize()
	callerOut.Finalize()
	calleeIn.Finalize()
	calleeOut.Finalize()

	report, err := Reconcile(test, callerIn, callerOut, calleeIn, calleeOut)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.NoError(t, report.Results[0])
	assert.Equal(t, []byte{0x4d, 0x3c, 0x2b, 0x1a}, callerIn.Funcs[0][0][0])
	assert.Equal(t, callerIn.Funcs[0][0][0], calleeIn.Funcs[0][0][0])
}

func TestReconcile_Scenario2_WidenedIntFailsFieldMismatch(t *testing.T) {
	test := &abicafe.Test{
		Name: "i32",
		Funcs: []abicafe.Func{
			{
				Name:        "i32_val_in",
				Conventions: []abicafe.CallingConvention{abicafe.ConventionC},
				Inputs:      []abicafe.Val{abicafe.NewInt(abicafe.Int32, true, big.NewInt(0x1a2b3c4d))},
			},
		},
	}

	callerIn, callerOut, calleeIn, calleeOut := observe.New(), observe.New(), observe.New(), observe.New()
	// Caller-side backend silently passes the i32 as an i64.
	callerIn.WriteField([]byte{0x4d, 0x3c, 0x2b, 0x1a, 0x00, 0x00, 0x00, 0x00})
	callerIn.FinishedVal()
	writeVal(calleeIn, test.Funcs[0].Inputs[0])
	observe.FinishedFunc(callerIn, calleeIn)
	observe.FinishedFunc(callerOut, calleeOut)
	callerIn.Finalize()
	callerOut.Finalize()
	calleeIn.Finalize()
	calleeOut.Finalize()

	report, err := Reconcile(test, callerIn, callerOut, calleeIn, calleeOut)
	require.NoError(t, err)
	var mismatch *InputFieldMismatch
	require.ErrorAs(t, report.Results[0], &mismatch)
	assert.Equal(t, 0, mismatch.FuncIdx)
}

func TestReconcile_Scenario3_RefWritesReferentBytes(t *testing.T) {
	inner := abicafe.NewInt(abicafe.Int32, true, big.NewInt(0x11223344))
	ref := abicafe.NewRef(inner)
	test := &abicafe.Test{
		Name: "by_ref",
		Funcs: []abicafe.Func{
			{Name: "i32_ref_in", Conventions: []abicafe.CallingConvention{abicafe.ConventionC}, Inputs: []abicafe.Val{ref}},
		},
	}

	callerIn, callerOut, calleeIn, calleeOut := observe.New(), observe.New(), observe.New(), observe.New()
	writeVal(callerIn, ref)
	writeVal(calleeIn, ref)
	observe.FinishedFunc(callerIn, calleeIn)
	observe.FinishedFunc(callerOut, calleeOut)
	callerIn.Finalize()
	callerOut.Finalize()
	calleeIn.Finalize()
	calleeOut.Finalize()

	report, err := Reconcile(test, callerIn, callerOut, calleeIn, calleeOut)
	require.NoError(t, err)
	assert.NoError(t, report.Results[0])
	require.Len(t, callerIn.Funcs[0][0], 1)
	assert.Len(t, callerIn.Funcs[0][0][0], 4)
}

func TestReconcile_Scenario4_FloatOutputNoInputs(t *testing.T) {
	output := abicafe.NewFloat(abicafe.Float64, 3.5)
	test := &abicafe.Test{
		Name: "f64",
		Funcs: []abicafe.Func{
			{Name: "f64_val_out", Conventions: []abicafe.CallingConvention{abicafe.ConventionC}, Output: output},
		},
	}

	callerIn, callerOut, calleeIn, calleeOut := observe.New(), observe.New(), observe.New(), observe.New()
	writeVal(callerOut, output)
	writeVal(calleeOut, output)
	observe.FinishedFunc(callerIn, calleeIn)
	observe.FinishedFunc(callerOut, calleeOut)
	callerIn.Finalize()
	callerOut.Finalize()
	calleeIn.Finalize()
	calleeOut.Finalize()

	report, err := Reconcile(test, callerIn, callerOut, calleeIn, calleeOut)
	require.NoError(t, err)
	assert.NoError(t, report.Results[0])
	assert.Empty(t, callerIn.Funcs[0])
	assert.Len(t, callerOut.Funcs[0][0][0], 8)
}

func TestReconcile_TestCountMismatchIsFatal(t *testing.T) {
	test := &abicafe.Test{
		Name: "t",
		Funcs: []abicafe.Func{
			{Name: "a", Conventions: []abicafe.CallingConvention{abicafe.ConventionC}},
			{Name: "b", Conventions: []abicafe.CallingConvention{abicafe.ConventionC}},
		},
	}

	callerIn, callerOut, calleeIn, calleeOut := observe.New(), observe.New(), observe.New(), observe.New()
	// Only close out one function on every buffer, but the test declares two.
	observe.FinishedFunc(callerIn, calleeIn)
	observe.FinishedFunc(callerOut, calleeOut)
	callerIn.Finalize()
	callerOut.Finalize()
	calleeIn.Finalize()
	calleeOut.Finalize()

	_, err := Reconcile(test, callerIn, callerOut, calleeIn, calleeOut)
	require.Error(t, err)
	var mismatch *abicafe.TestCountMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestReconcile_InputCountMismatch(t *testing.T) {
	test := &abicafe.Test{
		Name:  "t",
		Funcs: []abicafe.Func{{Name: "a", Conventions: []abicafe.CallingConvention{abicafe.ConventionC}}},
	}

	callerIn, callerOut, calleeIn, calleeOut := observe.New(), observe.New(), observe.New(), observe.New()
	callerIn.WriteField([]byte{1})
	callerIn.FinishedVal()
	observe.FinishedFunc(callerIn, calleeIn)
	observe.FinishedFunc(callerOut, calleeOut)
	callerIn.Finalize()
	callerOut.Finalize()
	calleeIn.Finalize()
	calleeOut.Finalize()

	report, err := Reconcile(test, callerIn, callerOut, calleeIn, calleeOut)
	require.NoError(t, err)
	var mismatch *InputCountMismatch
	require.ErrorAs(t, report.Results[0], &mismatch)
}
