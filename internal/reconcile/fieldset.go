package reconcile

import "github.com/bits-and-blooms/bitset"

// FieldSet is a compact bitmap over one subtest's flattened input+output
// field positions, marking every position where caller and callee
// disagreed. Reconcile itself only ever reports the first disagreement
// (spec section 4.7's priority-ordered short-circuit); FieldSet exists
// for the verbose diagnostics path, which wants the full picture instead
// of stopping at the first byte that differs.
type FieldSet struct {
	bits *bitset.BitSet
}

func newFieldSet(n uint) *FieldSet { return &FieldSet{bits: bitset.New(n)} }

func (f *FieldSet) mark(i uint) { f.bits.Set(i) }

// Count reports how many field positions disagreed.
func (f *FieldSet) Count() uint { return f.bits.Count() }

// Test reports whether field position i disagreed.
func (f *FieldSet) Test(i uint) bool { return f.bits.Test(i) }

// AllMismatches walks every field of one subtest's inputs and outputs
// without short-circuiting, returning a FieldSet over the flattened
// (inputs then outputs, value-major) field positions. Buffers of
// mismatched shape (different value or field counts) contribute no bits
// past the shared prefix, since there's no aligned position to mark
// past that point.
func AllMismatches(callerIn, callerOut, calleeIn, calleeOut [][][]byte) *FieldSet {
	total := uint(0)
	for _, v := range callerIn {
		total += uint(len(v))
	}
	for _, v := range callerOut {
		total += uint(len(v))
	}
	fs := newFieldSet(total)

	idx := uint(0)
	markSide := func(a, b [][][]byte) {
		for valIdx := 0; valIdx < len(a) && valIdx < len(b); valIdx++ {
			for fieldIdx := 0; fieldIdx < len(a[valIdx]) && fieldIdx < len(b[valIdx]); fieldIdx++ {
				if !bytesEqual(a[valIdx][fieldIdx], b[valIdx][fieldIdx]) {
					fs.mark(idx)
				}
				idx++
			}
		}
	}
	markSide(callerIn, calleeIn)
	markSide(callerOut, calleeOut)
	return fs
}
