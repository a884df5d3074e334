// Package loader opens a harness shared object and resolves its
// test_start entry symbol (spec section 4.6). Go has no portable
// stdlib way to dlopen an arbitrary native shared object (the "plugin"
// package only loads Go-built plugins), so this calls libdl directly
// through cgo.
package loader

/*
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/abi-cafe/abicafe-go/internal/observe/ffi"
)

// Library is a dynamically loaded shared object, kept mapped for as
// long as reconciliation needs the bytes copied out of it (spec section
// 5: "the dynamically loaded object must remain mapped for the
// duration of reconciliation").
type Library struct {
	handle unsafe.Pointer
	path   string
}

// Open dlopens the shared object at path with RTLD_NOW, so a missing
// symbol any generated code needs surfaces immediately rather than on
// first call.
func Open(path string) (*Library, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	C.dlerror() // clear any prior error
	handle := C.dlopen(cpath, C.RTLD_NOW)
	if handle == nil {
		return nil, fmt.Errorf("dlopen %s: %s", path, dlerror())
	}
	return &Library{handle: handle, path: path}, nil
}

// TestStart resolves the fixed entry symbol spec section 4.6 names.
func (l *Library) TestStart() (ffi.EntryFn, error) {
	return l.Symbol("test_start")
}

// Symbol resolves an arbitrary exported symbol by name.
func (l *Library) Symbol(name string) (ffi.EntryFn, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	C.dlerror()
	sym := C.dlsym(l.handle, cname)
	if sym == nil {
		if errStr := dlerror(); errStr != "" {
			return nil, fmt.Errorf("dlsym %s in %s: %s", name, l.path, errStr)
		}
	}
	return ffi.EntryFn(sym), nil
}

// Close unmaps the shared object. Callers must only do this after
// reconciliation has finished copying every byte it needs out of the
// observation buffers.
func (l *Library) Close() error {
	if C.dlclose(l.handle) != 0 {
		return fmt.Errorf("dlclose %s: %s", l.path, dlerror())
	}
	return nil
}

func dlerror() string {
	if msg := C.dlerror(); msg != nil {
		return C.GoString(msg)
	}
	return ""
}
