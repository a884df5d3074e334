// Package backend defines the language-backend contract from spec
// section 4.2. Concrete code-emitters for any particular source
// language are external collaborators per spec section 1 -- only their
// contract lives here, plus two reference implementations (c, stub)
// thin enough to exercise the rest of the pipeline without depending on
// every language's toolchain.
package backend

import (
	"io"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
)

// Backend is identified by {Name, SourceExt} and exposes the four
// generate/compile operations spec section 4.2 requires. A backend may
// fail any generate/compile call with abicafe.UnsupportedError (the
// test exercises a feature the backend cannot express) -- recoverable
// by skipping the pairing -- or a backend-specific compile error, which
// is fatal for that pairing.
type Backend interface {
	// Name is the backend's stable identifier, used to derive generated
	// source paths and pairing names (e.g. "c", "rust").
	Name() string

	// SourceExt is the file extension generated sources are written
	// with (e.g. "c", "rs").
	SourceExt() string

	// SupportedConventions lists every concrete CallingConvention this
	// backend can emit, used to expand ConventionAll.
	SupportedConventions() []abicafe.CallingConvention

	// GenerateCaller emits a source file that, for each Func, calls the
	// callee-side function under its declared convention, passes the
	// literals from Inputs, receives Output, and writes every input and
	// output to the observation protocol in source order, finishing
	// with finished_func after the last value of a function.
	GenerateCaller(w io.Writer, test *abicafe.Test) error

	// GenerateCallee emits a source file that defines each Func under
	// its declared convention, receives arguments, writes every
	// received input to the observation protocol, synthesizes and
	// returns an Output literal bitwise identical to what the caller
	// expects, and emits finished_func.
	GenerateCallee(w io.Writer, test *abicafe.Test) error

	// CompileCaller invokes the backend's toolchain against source,
	// producing a statically-linkable artifact in the shared build
	// directory. The backend may rename the artifact; the returned
	// name is authoritative.
	CompileCaller(sourcePath, desiredLibName string) (finalLibName string, err error)

	// CompileCallee is the callee-side analogue of CompileCaller.
	CompileCallee(sourcePath, desiredLibName string) (finalLibName string, err error)
}

// Registry is a name-indexed set of backends, enumerated by the driver
// to build the (caller, callee) pairing matrix: every ordered pair of
// registered names (see driver.Pairs).
type Registry struct {
	byName map[string]Backend
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]Backend{}}
}

// Register adds b to the registry, keyed by b.Name().
func (r *Registry) Register(b Backend) {
	r.byName[b.Name()] = b
}

// Get looks a backend up by name.
func (r *Registry) Get(name string) (Backend, bool) {
	b, ok := r.byName[name]
	return b, ok
}

// Names returns every registered backend name.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	return names
}
