package abicafe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildEnv_Environ(t *testing.T) {
	env := BuildEnv{
		OutDir:   "/tmp/abicafe-target",
		Host:     "x86_64-unknown-linux-gnu",
		Target:   "x86_64-unknown-linux-gnu",
		OptLevel: 3,
	}
	assert.Equal(t, []string{
		"OUT_DIR=/tmp/abicafe-target",
		"HOST=x86_64-unknown-linux-gnu",
		"TARGET=x86_64-unknown-linux-gnu",
		"OPT_LEVEL=3",
	}, env.Environ())
}

func TestBuildEnv_EnvironZeroValue(t *testing.T) {
	var env BuildEnv
	assert.Equal(t, []string{
		"OUT_DIR=",
		"HOST=",
		"TARGET=",
		"OPT_LEVEL=0",
	}, env.Environ())
}
