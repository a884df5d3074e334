package abicafe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallingConvention(t *testing.T) {
	cc, err := ParseCallingConvention("fastcall")
	require.NoError(t, err)
	assert.Equal(t, ConventionFastcall, cc)

	_, err = ParseCallingConvention("nonsense")
	assert.Error(t, err)
}

func TestConcrete_ExpandsAll(t *testing.T) {
	supported := []CallingConvention{ConventionC, ConventionStdcall}
	out := Concrete([]CallingConvention{ConventionAll}, supported)
	assert.Equal(t, supported, out)
}

func TestConcrete_LeavesNonAllAlone(t *testing.T) {
	out := Concrete([]CallingConvention{ConventionC, ConventionFastcall}, []CallingConvention{ConventionVectorcall})
	assert.Equal(t, []CallingConvention{ConventionC, ConventionFastcall}, out)
}
