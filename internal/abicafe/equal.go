package abicafe

// Equal reports full structural and literal equality between two Vals --
// stricter than ShapeEqual, which only compares type shape. Used by the
// manifest round-trip property (spec section 8): parse(serialize(test))
// must equal test, literals included.
func Equal(a, b Val) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *IntVal:
		y, ok := b.(*IntVal)
		return ok && x.Width == y.Width && x.Signed == y.Signed && x.Literal.Cmp(y.Literal) == 0
	case *FloatVal:
		y, ok := b.(*FloatVal)
		return ok && x.Width == y.Width && x.Literal == y.Literal
	case *BoolVal:
		y, ok := b.(*BoolVal)
		return ok && x.Literal == y.Literal
	case *PtrVal:
		y, ok := b.(*PtrVal)
		return ok && x.Literal == y.Literal
	case *ArrayVal:
		y, ok := b.(*ArrayVal)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !Equal(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	case *StructVal:
		y, ok := b.(*StructVal)
		if !ok || x.Name != y.Name || len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			if !Equal(x.Fields[i], y.Fields[i]) {
				return false
			}
		}
		return true
	case *RefVal:
		y, ok := b.(*RefVal)
		return ok && Equal(x.Inner, y.Inner)
	default:
		return false
	}
}

// FuncEqual reports full equality of two Funcs.
func FuncEqual(a, b *Func) bool {
	if a.Name != b.Name || len(a.Conventions) != len(b.Conventions) || len(a.Inputs) != len(b.Inputs) {
		return false
	}
	for i := range a.Conventions {
		if a.Conventions[i] != b.Conventions[i] {
			return false
		}
	}
	for i := range a.Inputs {
		if !Equal(a.Inputs[i], b.Inputs[i]) {
			return false
		}
	}
	return Equal(a.Output, b.Output)
}

// TestEqual reports full equality of two Tests.
func TestEqual(a, b *Test) bool {
	if a.Name != b.Name || len(a.Funcs) != len(b.Funcs) {
		return false
	}
	for i := range a.Funcs {
		if !FuncEqual(&a.Funcs[i], &b.Funcs[i]) {
			return false
		}
	}
	return true
}
