package abicafe

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"strings"
)

// ValKind discriminates the tagged sum Val is built from.
type ValKind int

const (
	KindInt ValKind = iota
	KindFloat
	KindBool
	KindPtr
	KindArray
	KindStruct
	KindRef
)

// Val is a single typed value literal: a tagged sum over the scalar and
// aggregate shapes a backend must be able to express across an ABI
// boundary. Equality is structural over "type shape" (constructor chain,
// widths, struct identity) rather than over literal contents -- two Vals
// with different literals but the same shape are the same type.
type Val interface {
	Kind() ValKind

	// Shape reports the canonical textual name used to derive generated
	// identifiers (ref_<inner>, arr_<len>_<elem>, struct_<name>, i8..i128,
	// u8..u128, f32, f64, bool, ptr). Two distinct Val shapes never
	// produce the same Shape().
	Shape() string

	// ShapeEqual reports whether other has the same type shape as v.
	ShapeEqual(other Val) bool

	// Leaves returns the ordered, left-to-right sequence of scalar
	// fields a conforming emitter must write to the observation
	// protocol for this value: recursing into arrays and structs
	// field-by-field, and into a Ref's referent rather than its
	// pointer. This is the write-back contract from spec section 4.4
	// made concrete enough to drive the reference backends and tests.
	Leaves() []Leaf

	Accept(ValVisitor) error
	String() string
}

// Leaf is one scalar field as it would be written by write_field: its
// raw little-endian byte encoding, exactly as the wire protocol compares
// it.
type Leaf struct {
	Bytes []byte
}

// ValVisitor dispatches over the Val sum's concrete variants.
type ValVisitor interface {
	VisitInt(*IntVal) error
	VisitFloat(*FloatVal) error
	VisitBool(*BoolVal) error
	VisitPtr(*PtrVal) error
	VisitArray(*ArrayVal) error
	VisitStruct(*StructVal) error
	VisitRef(*RefVal) error
}

// IntWidth is the bit width of an integer Val.
type IntWidth int

const (
	Int8 IntWidth = 8
	Int16 IntWidth = 16
	Int32 IntWidth = 32
	Int64 IntWidth = 64
	Int128 IntWidth = 128
)

// IntVal is Int(width, signed, literal) from spec section 3. Literal is
// held as math/big so 128-bit values round-trip exactly.
type IntVal struct {
	Width   IntWidth
	Signed  bool
	Literal *big.Int
}

func NewInt(width IntWidth, signed bool, literal *big.Int) *IntVal {
	return &IntVal{Width: width, Signed: signed, Literal: literal}
}

func (v *IntVal) Kind() ValKind { return KindInt }

func (v *IntVal) Shape() string {
	prefix := "u"
	if v.Signed {
		prefix = "i"
	}
	return fmt.Sprintf("%s%d", prefix, v.Width)
}

func (v *IntVal) ShapeEqual(other Val) bool {
	o, ok := other.(*IntVal)
	return ok && o.Width == v.Width && o.Signed == v.Signed
}

func (v *IntVal) Leaves() []Leaf {
	nbytes := int(v.Width) / 8
	buf := make([]byte, nbytes)
	// Two's complement little-endian encoding of Literal, truncated/
	// sign-extended to nbytes -- mirrors how a real backend would bit-
	// cast the manifest literal into the declared width.
	bitLen := nbytes * 8
	masked := new(big.Int)
	if v.Literal.Sign() < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(bitLen))
		masked.Add(v.Literal, mod)
	} else {
		masked.Set(v.Literal)
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(bitLen))
	masked.Mod(masked, mod)
	b := masked.Bytes() // big-endian, minimal length
	for i := 0; i < len(b); i++ {
		buf[i] = b[len(b)-1-i]
	}
	return []Leaf{{Bytes: buf}}
}

func (v *IntVal) Accept(vis ValVisitor) error { return vis.VisitInt(v) }

func (v *IntVal) String() string {
	return fmt.Sprintf("%s(0x%x)", v.Shape(), v.Literal)
}

// FloatWidth is the bit width of a floating point Val.
type FloatWidth int

const (
	Float32 FloatWidth = 32
	Float64 FloatWidth = 64
)

// FloatVal is Float(width, literal).
type FloatVal struct {
	Width   FloatWidth
	Literal float64
}

func NewFloat(width FloatWidth, literal float64) *FloatVal {
	return &FloatVal{Width: width, Literal: literal}
}

func (v *FloatVal) Kind() ValKind { return KindFloat }

func (v *FloatVal) Shape() string {
	if v.Width == Float32 {
		return "f32"
	}
	return "f64"
}

func (v *FloatVal) ShapeEqual(other Val) bool {
	o, ok := other.(*FloatVal)
	return ok && o.Width == v.Width
}

func (v *FloatVal) Leaves() []Leaf {
	if v.Width == Float32 {
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(v.Literal)))
		return []Leaf{{Bytes: buf}}
	}
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(v.Literal))
	return []Leaf{{Bytes: buf}}
}

func (v *FloatVal) Accept(vis ValVisitor) error { return vis.VisitFloat(v) }

func (v *FloatVal) String() string { return fmt.Sprintf("%s(%v)", v.Shape(), v.Literal) }

// BoolVal is Bool(literal).
type BoolVal struct{ Literal bool }

func NewBool(literal bool) *BoolVal { return &BoolVal{Literal: literal} }

func (v *BoolVal) Kind() ValKind                { return KindBool }
func (v *BoolVal) Shape() string                { return "bool" }
func (v *BoolVal) ShapeEqual(other Val) bool    { _, ok := other.(*BoolVal); return ok }
func (v *BoolVal) Accept(vis ValVisitor) error  { return vis.VisitBool(v) }
func (v *BoolVal) String() string               { return fmt.Sprintf("bool(%v)", v.Literal) }
func (v *BoolVal) Leaves() []Leaf {
	b := byte(0)
	if v.Literal {
		b = 1
	}
	return []Leaf{{Bytes: []byte{b}}}
}

// PtrVal is Ptr(literal) -- an opaque pointer-sized integer transported
// as a pointer. Per spec section 9 design note (b), the bytes written
// are always the literal bit pattern from the manifest, never the
// address of a heap object the backend may have allocated to carry it.
type PtrVal struct{ Literal uint64 }

func NewPtr(literal uint64) *PtrVal { return &PtrVal{Literal: literal} }

func (v *PtrVal) Kind() ValKind             { return KindPtr }
func (v *PtrVal) Shape() string             { return "ptr" }
func (v *PtrVal) ShapeEqual(other Val) bool { _, ok := other.(*PtrVal); return ok }
func (v *PtrVal) Accept(vis ValVisitor) error { return vis.VisitPtr(v) }
func (v *PtrVal) String() string            { return fmt.Sprintf("ptr(0x%x)", v.Literal) }
func (v *PtrVal) Leaves() []Leaf {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v.Literal)
	return []Leaf{{Bytes: buf}}
}

// ArrayVal is Array(elements) -- a non-empty ordered sequence of Val,
// all elements sharing the same shape.
type ArrayVal struct{ Elements []Val }

func NewArray(elements []Val) (*ArrayVal, error) {
	if len(elements) == 0 {
		return nil, fmt.Errorf("arrays must have length > 0")
	}
	first := elements[0]
	for i, e := range elements[1:] {
		if !e.ShapeEqual(first) {
			return nil, fmt.Errorf("array element %d has shape %s, expected %s", i+1, e.Shape(), first.Shape())
		}
	}
	return &ArrayVal{Elements: elements}, nil
}

func (v *ArrayVal) Kind() ValKind { return KindArray }

func (v *ArrayVal) Shape() string {
	return fmt.Sprintf("arr_%d_%s", len(v.Elements), v.Elements[0].Shape())
}

func (v *ArrayVal) ShapeEqual(other Val) bool {
	o, ok := other.(*ArrayVal)
	if !ok || len(o.Elements) != len(v.Elements) {
		return false
	}
	if len(v.Elements) == 0 {
		return true
	}
	return o.Elements[0].ShapeEqual(v.Elements[0])
}

func (v *ArrayVal) Leaves() []Leaf {
	var out []Leaf
	for _, e := range v.Elements {
		out = append(out, e.Leaves()...)
	}
	return out
}

func (v *ArrayVal) Accept(vis ValVisitor) error { return vis.VisitArray(v) }

func (v *ArrayVal) String() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = e.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}

// StructVal is Struct(name, fields) -- a named aggregate. Struct
// identity is by name: every occurrence of a struct with the same name
// within a Test must share field shapes, enforced at generation time
// by Test.CheckStructConsistency (violation is InconsistentStructDefinition).
type StructVal struct {
	Name   string
	Fields []Val
}

func NewStruct(name string, fields []Val) *StructVal {
	return &StructVal{Name: name, Fields: fields}
}

func (v *StructVal) Kind() ValKind { return KindStruct }
func (v *StructVal) Shape() string { return fmt.Sprintf("struct_%s", v.Name) }

func (v *StructVal) ShapeEqual(other Val) bool {
	o, ok := other.(*StructVal)
	return ok && o.Name == v.Name
}

// FieldsShapeEqual reports whether two structs sharing a name actually
// agree on field shapes -- the invariant Test.CheckStructConsistency enforces
// across an entire Test.
func (v *StructVal) FieldsShapeEqual(other *StructVal) bool {
	if len(v.Fields) != len(other.Fields) {
		return false
	}
	for i := range v.Fields {
		if !v.Fields[i].ShapeEqual(other.Fields[i]) {
			return false
		}
	}
	return true
}

func (v *StructVal) Leaves() []Leaf {
	var out []Leaf
	for _, f := range v.Fields {
		out = append(out, f.Leaves()...)
	}
	return out
}

func (v *StructVal) Accept(vis ValVisitor) error { return vis.VisitStruct(v) }

func (v *StructVal) String() string {
	parts := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("%s{%s}", v.Name, strings.Join(parts, ", "))
}

// RefVal is Ref(inner) -- inner is passed by reference on the wire. The
// bytes written to the observation protocol are always the referent's
// bytes (inner.Leaves()), never the pointer itself, per spec section 4.4.
type RefVal struct{ Inner Val }

func NewRef(inner Val) *RefVal { return &RefVal{Inner: inner} }

func (v *RefVal) Kind() ValKind             { return KindRef }
func (v *RefVal) Shape() string             { return fmt.Sprintf("ref_%s", v.Inner.Shape()) }
func (v *RefVal) ShapeEqual(other Val) bool {
	o, ok := other.(*RefVal)
	return ok && o.Inner.ShapeEqual(v.Inner)
}
func (v *RefVal) Leaves() []Leaf              { return v.Inner.Leaves() }
func (v *RefVal) Accept(vis ValVisitor) error { return vis.VisitRef(v) }
func (v *RefVal) String() string              { return fmt.Sprintf("ref(%s)", v.Inner.String()) }

// CanonicalName is an alias for Shape, kept distinct so callers deriving
// generated identifiers (spec section 4.1) don't need to know that the
// identifier schema and the type-shape schema happen to coincide.
func CanonicalName(v Val) string { return v.Shape() }

// CollectStructs walks v and reports every *StructVal reachable from it,
// including v itself if it is one.
func CollectStructs(v Val) []*StructVal {
	var out []*StructVal
	var walk func(Val)
	walk = func(v Val) {
		switch n := v.(type) {
		case *StructVal:
			out = append(out, n)
			for _, f := range n.Fields {
				walk(f)
			}
		case *ArrayVal:
			for _, e := range n.Elements {
				walk(e)
			}
		case *RefVal:
			walk(n.Inner)
		}
	}
	walk(v)
	return out
}
