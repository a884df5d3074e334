package observe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer_SingleFuncSingleVal(t *testing.T) {
	caller := New()
	callee := New()

	caller.WriteField([]byte{0x4d, 0x3c, 0x2b, 0x1a})
	caller.FinishedVal()
	callee.WriteField([]byte{0x4d, 0x3c, 0x2b, 0x1a})
	callee.FinishedVal()

	FinishedFunc(caller, callee)

	caller.Finalize()
	callee.Finalize()

	assert.Equal(t, 1, caller.Len())
	assert.Equal(t, 1, callee.Len())
	assert.Equal(t, [][][]byte{{{0x4d, 0x3c, 0x2b, 0x1a}}}, caller.Funcs[0])
}

func TestBuffer_MultipleValuesPerFunc(t *testing.T) {
	buf := New()
	buf.WriteField([]byte{1})
	buf.FinishedVal()
	buf.WriteField([]byte{2})
	buf.WriteField([]byte{3}) // second field of the second value
	buf.FinishedVal()

	other := New()
	FinishedFunc(buf, other)
	buf.Finalize()

	assert.Len(t, buf.Funcs, 1)
	assert.Equal(t, [][][]byte{{{1}}, {{2}, {3}}}, buf.Funcs[0])
}

func TestBuffer_EmptyValueSequenceForNoInputs(t *testing.T) {
	caller := New()
	other := New()
	FinishedFunc(caller, other)
	caller.Finalize()

	assert.Len(t, caller.Funcs, 1)
	assert.Empty(t, caller.Funcs[0])
}

func TestBuffer_Finalize_ExactFunctionCount(t *testing.T) {
	a := New()
	b := New()
	for i := 0; i < 3; i++ {
		a.WriteField([]byte{byte(i)})
		FinishedFunc(a, b)
	}
	a.Finalize()
	b.Finalize()
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 3, b.Len())
}

func TestBuffer_WriteField_CopiesBytes(t *testing.T) {
	buf := New()
	src := []byte{1, 2, 3}
	buf.WriteField(src)
	src[0] = 0xff
	assert.Equal(t, byte(1), buf.Funcs[0][0][0][0])
}
