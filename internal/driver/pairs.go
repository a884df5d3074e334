// Package driver wires together manifest loading, source generation,
// compilation, dynamic loading, and reconciliation into the end-to-end
// run spec section 5/9 describes: for every manifest, for every
// (caller, callee) backend pairing, produce one TestReport.
package driver

import (
	"sort"

	"github.com/abi-cafe/abicafe-go/internal/backend"
)

// Pair is one (caller backend, callee backend) combination to exercise.
type Pair struct {
	Caller string
	Callee string
}

// Pairs returns every ordered pairing of the registered backends,
// including a backend paired with itself -- mirroring the original
// implementation's static TEST_PAIRS matrix, generalized from a fixed
// (c, rust) pair to the full cross product of whatever is registered,
// so adding a backend automatically grows the matrix.
func Pairs(reg *backend.Registry) []Pair {
	names := reg.Names()
	sort.Strings(names)
	pairs := make([]Pair, 0, len(names)*len(names))
	for _, caller := range names {
		for _, callee := range names {
			pairs = append(pairs, Pair{Caller: caller, Callee: callee})
		}
	}
	return pairs
}
