// Package observe implements the write-back protocol from spec section
// 4.4: the hierarchical observation tree (function -> value -> field ->
// bytes) that both the generated caller and callee write their argument
// and return bytes into, and the three callbacks that mutate it.
package observe

// Buffer is one of the four observation trees (caller_inputs,
// caller_outputs, callee_inputs, callee_outputs). At any moment it ends
// with exactly one pending function and, inside it, one pending value;
// New preloads those pending frames (invariant 1 of spec section 4.4).
type Buffer struct {
	Funcs [][][][]byte
}

// New returns a Buffer primed with an empty pending function containing
// a single empty pending value.
func New() *Buffer {
	return &Buffer{Funcs: [][][][]byte{{{}}}}
}

// WriteField appends one scalar field, copied out of bytes, to the
// buffer's current pending value. It never starts a new value or
// function on its own (invariant 2).
func (b *Buffer) WriteField(bytes []byte) {
	lastFunc := len(b.Funcs) - 1
	lastVal := len(b.Funcs[lastFunc]) - 1
	field := append([]byte(nil), bytes...)
	b.Funcs[lastFunc][lastVal] = append(b.Funcs[lastFunc][lastVal], field)
}

// FinishedVal closes the current pending value and opens a new, empty
// one; it never consumes bytes (invariant 2).
func (b *Buffer) FinishedVal() {
	lastFunc := len(b.Funcs) - 1
	b.Funcs[lastFunc] = append(b.Funcs[lastFunc], [][]byte{})
}

// FinishedFunc discards the trailing pending (empty) value on both a
// and b and starts a fresh pending function on each (invariant 3). It
// takes both buffers at once because finished_func is called with the
// pair of buffers relevant to one side (inputs+outputs).
func FinishedFunc(a, b *Buffer) {
	for _, buf := range [2]*Buffer{a, b} {
		lastFunc := len(buf.Funcs) - 1
		buf.Funcs[lastFunc] = buf.Funcs[lastFunc][:len(buf.Funcs[lastFunc])-1]
		buf.Funcs = append(buf.Funcs, [][][]byte{{}})
	}
}

// Finalize pops the final pending function, leaving exactly the
// functions that were actually closed out by finished_func calls
// (invariant 4). Call once per buffer after test_start returns.
func (b *Buffer) Finalize() {
	b.Funcs = b.Funcs[:len(b.Funcs)-1]
}

// Len reports the number of closed function frames. Only meaningful
// after Finalize.
func (b *Buffer) Len() int { return len(b.Funcs) }
