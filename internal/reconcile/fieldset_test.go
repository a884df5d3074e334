package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllMismatches_MarksEveryDisagreement(t *testing.T) {
	callerIn := [][][]byte{{{1, 2}, {3}}}
	calleeIn := [][][]byte{{{1, 2}, {9}}}
	callerOut := [][][]byte{{{5}}}
	calleeOut := [][][]byte{{{6}}}

	fs := AllMismatches(callerIn, callerOut, calleeIn, calleeOut)
	assert.EqualValues(t, 2, fs.Count())
	assert.False(t, fs.Test(0))
	assert.True(t, fs.Test(1))
	assert.True(t, fs.Test(2))
}

func TestAllMismatches_NoDisagreement(t *testing.T) {
	callerIn := [][][]byte{{{1, 2}}}
	calleeIn := [][][]byte{{{1, 2}}}

	fs := AllMismatches(callerIn, nil, calleeIn, nil)
	assert.EqualValues(t, 0, fs.Count())
}
