package abicafe

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntVal_Shape(t *testing.T) {
	tests := []struct {
		name     string
		width    IntWidth
		signed   bool
		expected string
	}{
		{name: "signed 8", width: Int8, signed: true, expected: "i8"},
		{name: "unsigned 8", width: Int8, signed: false, expected: "u8"},
		{name: "signed 32", width: Int32, signed: true, expected: "i32"},
		{name: "unsigned 64", width: Int64, signed: false, expected: "u64"},
		{name: "signed 128", width: Int128, signed: true, expected: "i128"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewInt(tt.width, tt.signed, big.NewInt(0))
			assert.Equal(t, tt.expected, v.Shape())
		})
	}
}

func TestIntVal_Leaves_LittleEndian(t *testing.T) {
	v := NewInt(Int32, true, big.NewInt(0x1a2b3c4d))
	leaves := v.Leaves()
	assert.Len(t, leaves, 1)
	assert.Equal(t, []byte{0x4d, 0x3c, 0x2b, 0x1a}, leaves[0].Bytes)
}

func TestIntVal_Leaves_NegativeTwosComplement(t *testing.T) {
	v := NewInt(Int8, true, big.NewInt(-1))
	leaves := v.Leaves()
	assert.Equal(t, []byte{0xff}, leaves[0].Bytes)
}

func TestFloatVal_Leaves(t *testing.T) {
	v := NewFloat(Float64, 3.5)
	leaves := v.Leaves()
	assert.Len(t, leaves, 1)
	assert.Len(t, leaves[0].Bytes, 8)
}

func TestShapeEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Val
		expected bool
	}{
		{
			name:     "same int shape, different literal",
			a:        NewInt(Int32, true, big.NewInt(1)),
			b:        NewInt(Int32, true, big.NewInt(2)),
			expected: true,
		},
		{
			name:     "different signedness",
			a:        NewInt(Int32, true, big.NewInt(1)),
			b:        NewInt(Int32, false, big.NewInt(1)),
			expected: false,
		},
		{
			name:     "different width",
			a:        NewInt(Int32, true, big.NewInt(1)),
			b:        NewInt(Int64, true, big.NewInt(1)),
			expected: false,
		},
		{
			name:     "struct identity is by name",
			a:        NewStruct("S", []Val{NewInt(Int32, true, big.NewInt(1))}),
			b:        NewStruct("S", []Val{NewInt(Int32, true, big.NewInt(2))}),
			expected: true,
		},
		{
			name:     "different struct names",
			a:        NewStruct("S", nil),
			b:        NewStruct("T", nil),
			expected: false,
		},
		{
			name:     "ref wraps shape comparison",
			a:        NewRef(NewInt(Int32, true, big.NewInt(1))),
			b:        NewRef(NewInt(Int32, true, big.NewInt(2))),
			expected: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.ShapeEqual(tt.b))
		})
	}
}

func TestStructVal_FieldsShapeEqual(t *testing.T) {
	a := NewStruct("S", []Val{NewInt(Int32, true, big.NewInt(0)), NewInt(Int32, true, big.NewInt(0))})
	b := NewStruct("S", []Val{NewInt(Int32, true, big.NewInt(9)), NewInt(Int32, true, big.NewInt(9))})
	c := NewStruct("S", []Val{NewInt(Int32, true, big.NewInt(0)), NewFloat(Float32, 0)})

	assert.True(t, a.FieldsShapeEqual(b))
	assert.False(t, a.FieldsShapeEqual(c))
}

func TestArrayVal_RequiresNonEmpty(t *testing.T) {
	_, err := NewArray(nil)
	assert.Error(t, err)
}

func TestArrayVal_RequiresUniformShape(t *testing.T) {
	_, err := NewArray([]Val{
		NewInt(Int32, true, big.NewInt(0)),
		NewFloat(Float32, 0),
	})
	assert.Error(t, err)
}

func TestRefVal_LeavesAreReferentBytes(t *testing.T) {
	inner := NewInt(Int32, true, big.NewInt(0x11223344))
	ref := NewRef(inner)
	assert.Equal(t, inner.Leaves(), ref.Leaves())
}

func TestCollectStructs(t *testing.T) {
	inner := NewStruct("Inner", []Val{NewInt(Int8, false, big.NewInt(0))})
	outer := NewStruct("Outer", []Val{inner, NewInt(Int32, true, big.NewInt(0))})
	structs := CollectStructs(outer)
	assert.Len(t, structs, 2)
}
