// Package ffi bridges the platform C calling convention harness ABI
// (spec section 6) to the pure-Go observe.Buffer implementation. It is
// the only place in this codebase where generated native code calls
// back into the Go runtime, so it is kept as small as possible and
// isolated behind runtime/cgo.Handle rather than passing raw Go
// pointers across the boundary -- the handle indirection is what keeps
// this safe under Go's cgo pointer-passing rules.
//
// The cgo usage here pairs a small C preamble with exported Go
// callbacks, since here Go is the side being called into, not the side
// doing the calling.
package ffi

/*
#include <stdint.h>
#include <stdlib.h>

typedef void (*write_field_fn)(void*, const uint8_t*, uint32_t);
typedef void (*finished_val_fn)(void*);
typedef void (*finished_func_fn)(void*, void*);
typedef void (*test_start_fn)(write_field_fn, finished_val_fn, finished_func_fn,
                               void*, void*, void*, void*);

extern void abicafeWriteField(void*, uint8_t*, uint32_t);
extern void abicafeFinishedVal(void*);
extern void abicafeFinishedFunc(void*, void*);

static inline void abicafe_invoke_test_start(
    test_start_fn fn,
    void *caller_in, void *caller_out, void *callee_in, void *callee_out
) {
    fn(
        (write_field_fn)abicafeWriteField,
        (finished_val_fn)abicafeFinishedVal,
        (finished_func_fn)abicafeFinishedFunc,
        caller_in, caller_out, callee_in, callee_out
    );
}
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"github.com/abi-cafe/abicafe-go/internal/observe"
)

//export abicafeWriteField
func abicafeWriteField(h unsafe.Pointer, bytes *C.uint8_t, size C.uint32_t) {
	buf := handleBuffer(h)
	buf.WriteField(C.GoBytes(unsafe.Pointer(bytes), C.int(size)))
}

//export abicafeFinishedVal
func abicafeFinishedVal(h unsafe.Pointer) {
	handleBuffer(h).FinishedVal()
}

//export abicafeFinishedFunc
func abicafeFinishedFunc(h1, h2 unsafe.Pointer) {
	observe.FinishedFunc(handleBuffer(h1), handleBuffer(h2))
}

func handleBuffer(h unsafe.Pointer) *observe.Buffer {
	return cgo.Handle(uintptr(h)).Value().(*observe.Buffer)
}

// EntryFn is the resolved test_start symbol, as returned by the
// dynamic loader.
type EntryFn unsafe.Pointer

// Invoke calls the harness's test_start entry point once, handing it
// the three callbacks (via the cgo trampolines above) and the four
// freshly-initialized buffers (spec section 4.6). It treats a crash
// during the call as the caller's concern -- per spec section 4.6, a
// miscompilation segfaulting is itself evidence, not a bug.
func Invoke(fn EntryFn, callerIn, callerOut, calleeIn, calleeOut *observe.Buffer) {
	hCallerIn := cgo.NewHandle(callerIn)
	hCallerOut := cgo.NewHandle(callerOut)
	hCalleeIn := cgo.NewHandle(calleeIn)
	hCalleeOut := cgo.NewHandle(calleeOut)
	defer hCallerIn.Delete()
	defer hCallerOut.Delete()
	defer hCalleeIn.Delete()
	defer hCalleeOut.Delete()

	C.abicafe_invoke_test_start(
		C.test_start_fn(fn),
		unsafe.Pointer(uintptr(hCallerIn)),
		unsafe.Pointer(uintptr(hCallerOut)),
		unsafe.Pointer(uintptr(hCalleeIn)),
		unsafe.Pointer(uintptr(hCalleeOut)),
	)
}
