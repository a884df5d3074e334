package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
)

// Serialize renders t back into the textual manifest format. Parsing
// the result with Parse must reproduce a Test equal to t (spec section
// 8's round-trip property).
func Serialize(t *abicafe.Test) ([]byte, error) {
	raw := testToRaw(t)
	return yaml.Marshal(raw)
}

// Save serializes t and writes it to path, used by the procedural
// synthesizer's (disabled-by-default) regeneration pass.
func Save(path string, t *abicafe.Test) error {
	data, err := Serialize(t)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func testToRaw(t *abicafe.Test) rawTest {
	raw := rawTest{Name: t.Name}
	for _, f := range t.Funcs {
		raw.Funcs = append(raw.Funcs, funcToRaw(f))
	}
	return raw
}

func funcToRaw(f abicafe.Func) rawFunc {
	rf := rawFunc{Name: f.Name}
	for _, cc := range f.Conventions {
		rf.Conventions = append(rf.Conventions, cc.String())
	}
	for _, in := range f.Inputs {
		rf.Inputs = append(rf.Inputs, valToRaw(in))
	}
	if f.Output != nil {
		out := valToRaw(f.Output)
		rf.Output = &out
	}
	return rf
}

func valToRaw(v abicafe.Val) rawVal {
	switch n := v.(type) {
	case *abicafe.IntVal:
		return rawVal{Type: "int", Width: int(n.Width), Signed: n.Signed, Value: fmt.Sprintf("0x%x", n.Literal)}
	case *abicafe.FloatVal:
		return rawVal{Type: "float", Width: int(n.Width), Value: fmt.Sprintf("%v", n.Literal)}
	case *abicafe.BoolVal:
		return rawVal{Type: "bool", Bool: n.Literal}
	case *abicafe.PtrVal:
		return rawVal{Type: "ptr", Value: fmt.Sprintf("0x%x", n.Literal)}
	case *abicafe.ArrayVal:
		items := make([]rawVal, len(n.Elements))
		for i, e := range n.Elements {
			items[i] = valToRaw(e)
		}
		return rawVal{Type: "array", Items: items}
	case *abicafe.StructVal:
		fields := make([]rawVal, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = valToRaw(f)
		}
		return rawVal{Type: "struct", Name: n.Name, Fields: fields}
	case *abicafe.RefVal:
		inner := valToRaw(n.Inner)
		return rawVal{Type: "ref", Inner: &inner}
	default:
		panic(fmt.Sprintf("manifest: unknown Val implementation %T", v))
	}
}
