package c

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
)

// cType returns the C type of a scalar Val, or of an aggregate Val's
// element/field type where that's meaningful standalone (arrays need
// the separate declare() form since C declarators wrap the name).
func cType(v abicafe.Val) string {
	switch n := v.(type) {
	case *abicafe.IntVal:
		return cIntType(n.Width, n.Signed)
	case *abicafe.FloatVal:
		if n.Width == abicafe.Float32 {
			return "float"
		}
		return "double"
	case *abicafe.BoolVal:
		return "bool"
	case *abicafe.PtrVal:
		return "void*"
	case *abicafe.StructVal:
		return structTypeName(n.Name)
	case *abicafe.RefVal:
		return cType(n.Inner) + "*"
	case *abicafe.ArrayVal:
		return cType(n.Elements[0])
	default:
		panic(fmt.Sprintf("c backend: unhandled Val %T", v))
	}
}

func cIntType(width abicafe.IntWidth, signed bool) string {
	if width == abicafe.Int128 {
		// __int128 is a GCC/Clang extension, not ISO C -- carried
		// deliberately per spec section 9 design note (c): known
		// broken/underaligned on some targets, and this tester
		// neither hides nor special-cases that.
		if signed {
			return "__int128"
		}
		return "unsigned __int128"
	}
	prefix := "uint"
	if signed {
		prefix = "int"
	}
	return fmt.Sprintf("%s%d_t", prefix, int(width))
}

func structTypeName(name string) string {
	return fmt.Sprintf("abicafe_struct_%s_t", sanitizeIdent(name))
}

// declare renders a full C declarator for a local/parameter named name
// holding v -- the one place arrays need special casing since their
// size suffixes the identifier rather than the base type.
func declare(name string, v abicafe.Val) string {
	if arr, ok := v.(*abicafe.ArrayVal); ok {
		return fmt.Sprintf("%s %s[%d]", cType(arr.Elements[0]), name, len(arr.Elements))
	}
	return fmt.Sprintf("%s %s", cType(v), name)
}

// cLiteral renders a C initializer expression bitwise equivalent to v's
// manifest literal. Per spec section 9 design note (b), pointer values
// always render the literal bits from the manifest, never a runtime
// address.
func cLiteral(v abicafe.Val) string {
	switch n := v.(type) {
	case *abicafe.IntVal:
		return intLiteral(n)
	case *abicafe.FloatVal:
		if n.Width == abicafe.Float32 {
			return fmt.Sprintf("%gf", n.Literal)
		}
		return fmt.Sprintf("%g", n.Literal)
	case *abicafe.BoolVal:
		if n.Literal {
			return "true"
		}
		return "false"
	case *abicafe.PtrVal:
		return fmt.Sprintf("(void*)(uintptr_t)0x%xULL", n.Literal)
	case *abicafe.ArrayVal:
		parts := make([]string, len(n.Elements))
		for i, e := range n.Elements {
			parts[i] = cLiteral(e)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *abicafe.StructVal:
		parts := make([]string, len(n.Fields))
		for i, f := range n.Fields {
			parts[i] = cLiteral(f)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *abicafe.RefVal:
		return cLiteral(n.Inner)
	default:
		panic(fmt.Sprintf("c backend: unhandled Val %T", v))
	}
}

func intLiteral(n *abicafe.IntVal) string {
	unsigned := twosComplementUnsigned(n.Literal, int(n.Width))
	if n.Width == abicafe.Int128 {
		hi := new(big.Int).Rsh(unsigned, 64)
		mask64 := new(big.Int).SetUint64(^uint64(0))
		lo := new(big.Int).And(unsigned, mask64)
		return fmt.Sprintf(
			"((%s)(((unsigned __int128)0x%xULL << 64) | (unsigned __int128)0x%xULL))",
			cIntType(n.Width, n.Signed), hi, lo,
		)
	}
	return fmt.Sprintf("((%s)0x%xULL)", cIntType(n.Width, n.Signed), unsigned)
}

// twosComplementUnsigned masks lit into its unsigned bitLen-bit
// two's-complement representation, mirroring abicafe.IntVal.Leaves.
func twosComplementUnsigned(lit *big.Int, bitLen int) *big.Int {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(bitLen))
	out := new(big.Int)
	if lit.Sign() < 0 {
		out.Add(lit, mod)
	} else {
		out.Set(lit)
	}
	return out.Mod(out, mod)
}

func sanitizeIdent(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
