package synth

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
)

func basePalette() []abicafe.Val {
	return []abicafe.Val{
		abicafe.NewInt(abicafe.Int32, true, big.NewInt(7)),
		abicafe.NewFloat(abicafe.Float64, 2.5),
		abicafe.NewBool(true),
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	a := Synthesize("demo", basePalette(), 4, 16)
	b := Synthesize("demo", basePalette(), 4, 16)
	require.Equal(t, len(a.Funcs), len(b.Funcs))
	for i := range a.Funcs {
		assert.Equal(t, a.Funcs[i].Name, b.Funcs[i].Name, "func %d name", i)
		assert.True(t, abicafe.FuncEqual(&a.Funcs[i], &b.Funcs[i]), "func %d contents", i)
	}
}

func TestSynthesize_Catalog(t *testing.T) {
	base := basePalette()
	test := Synthesize("demo", base, 4, 16)

	wantSingleRef := len(base) * 2
	wantTuples := maxTuple - minTuple + 1
	wantStructs := maxStruct - minStruct + 1
	wantPerturbed := (4 + 16) * 2 * 3 // counts * perturbations * {value,struct,refstruct}

	assert.Equal(t, wantSingleRef+wantTuples+wantStructs+wantPerturbed, len(test.Funcs))
}

func TestSynthesize_StructsPassConsistency(t *testing.T) {
	test := Synthesize("demo", basePalette(), 4, 16)
	assert.NoError(t, test.CheckStructConsistency())
}
