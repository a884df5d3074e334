package synth

import (
	"math/big"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
)

// DefaultCatalog returns the base value each of this tester's scalar
// manifests synthesizes its procedural suite from, keyed the same way
// as abicafe.DefaultTestNames. structs/by_ref/opaque_example are
// themselves hand-authored fixtures, not base-value seeds, so they're
// left out here the same way the original implementation's procedural
// generator only ever walked the scalar TESTS entries.
func DefaultCatalog() map[string][]abicafe.Val {
	return map[string][]abicafe.Val{
		"i8":    {abicafe.NewInt(abicafe.Int8, true, big.NewInt(-1))},
		"i16":   {abicafe.NewInt(abicafe.Int16, true, big.NewInt(-1))},
		"i32":   {abicafe.NewInt(abicafe.Int32, true, big.NewInt(-1))},
		"i64":   {abicafe.NewInt(abicafe.Int64, true, big.NewInt(-1))},
		"u8":    {abicafe.NewInt(abicafe.Int8, false, big.NewInt(0xff))},
		"u16":   {abicafe.NewInt(abicafe.Int16, false, big.NewInt(0xffff))},
		"u32":   {abicafe.NewInt(abicafe.Int32, false, big.NewInt(0xffffffff))},
		"u64":   {abicafe.NewInt(abicafe.Int64, false, new(big.Int).SetUint64(0xffffffffffffffff))},
		"ui128": {abicafe.NewInt(abicafe.Int128, false, new(big.Int).Lsh(big.NewInt(1), 100))},
		"f32":   {abicafe.NewFloat(abicafe.Float32, 3.14159)},
		"f64":   {abicafe.NewFloat(abicafe.Float64, 2.718281828459045)},
		"bool":  {abicafe.NewBool(true)},
		"ptr":   {abicafe.NewPtr(0xdeadbeef)},
	}
}
