package c

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
)

func sampleTest() *abicafe.Test {
	return &abicafe.Test{
		Name: "demo",
		Funcs: []abicafe.Func{
			{
				Name:        "add_one",
				Conventions: []abicafe.CallingConvention{abicafe.ConventionC},
				Inputs:      []abicafe.Val{abicafe.NewInt(abicafe.Int32, true, big.NewInt(41))},
				Output:      abicafe.NewInt(abicafe.Int32, true, big.NewInt(42)),
			},
			{
				Name:        "take_struct",
				Conventions: []abicafe.CallingConvention{abicafe.ConventionC},
				Inputs: []abicafe.Val{
					abicafe.NewStruct("point", []abicafe.Val{
						abicafe.NewInt(abicafe.Int32, true, big.NewInt(1)),
						abicafe.NewInt(abicafe.Int32, true, big.NewInt(2)),
					}),
				},
			},
		},
	}
}

func TestBackend_GenerateCaller(t *testing.T) {
	b := New()
	var buf bytes.Buffer
	require.NoError(t, b.GenerateCaller(&buf, sampleTest()))

	out := buf.String()
	assert.Contains(t, out, "abicafe_demo_add_one_c_callee")
	assert.Contains(t, out, "abicafe_demo_c_callee_init")
	assert.Contains(t, out, "demo_c_caller_test_start")
	assert.Contains(t, out, "abicafe_struct_point_t")
	assert.Contains(t, out, "wf(caller_in")
}

func TestBackend_GenerateCallee(t *testing.T) {
	b := New()
	var buf bytes.Buffer
	require.NoError(t, b.GenerateCallee(&buf, sampleTest()))

	out := buf.String()
	assert.Contains(t, out, "abicafe_demo_add_one_c_callee")
	assert.Contains(t, out, "static write_field_fn g_wf;")
	assert.Contains(t, out, "g_ff(g_callee_in, g_callee_out);")
}

func TestBackend_UnsupportedConvention(t *testing.T) {
	b := New()
	test := &abicafe.Test{
		Name: "demo",
		Funcs: []abicafe.Func{{
			Name:        "v",
			Conventions: []abicafe.CallingConvention{abicafe.ConventionVectorcall},
			Inputs:      []abicafe.Val{abicafe.NewBool(true)},
		}},
	}
	var buf bytes.Buffer
	err := b.GenerateCaller(&buf, test)
	require.Error(t, err)
	var unsupported *abicafe.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
}

func TestIntLiteral_Width128(t *testing.T) {
	lit := abicafe.NewInt(abicafe.Int128, false, new(big.Int).Lsh(big.NewInt(1), 100))
	s := cLiteral(lit)
	assert.Contains(t, s, "unsigned __int128")
}
