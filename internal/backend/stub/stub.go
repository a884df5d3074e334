// Package stub implements an in-process Backend used only by tests: it
// skips the native toolchain entirely and records what it would have
// compiled, so internal/driver's generate/build/reconcile plumbing is
// exercisable without a real C or Rust toolchain in CI. This is the
// concrete seam spec section 1 leaves external ("concrete code-emitters
// for any particular source language... only their contract is
// specified") made just real enough to drive end-to-end.
package stub

import (
	"fmt"
	"io"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
	"github.com/abi-cafe/abicafe-go/internal/gen"
)

// CompileRecord is one (fake) compile invocation stub.Backend observed.
type CompileRecord struct {
	Side           string // "caller" or "callee"
	SourcePath     string
	DesiredLibName string
}

// Backend is a stub language backend named Name_.
type Backend struct {
	Name_       string
	Conventions []abicafe.CallingConvention
	Compiled    []CompileRecord
}

// New returns a stub backend supporting ConventionC by default.
func New(name string) *Backend {
	return &Backend{
		Name_:       name,
		Conventions: []abicafe.CallingConvention{abicafe.ConventionC},
	}
}

func (b *Backend) Name() string      { return b.Name_ }
func (b *Backend) SourceExt() string { return "stub" }

func (b *Backend) SupportedConventions() []abicafe.CallingConvention {
	return b.Conventions
}

func (b *Backend) GenerateCaller(w io.Writer, test *abicafe.Test) error {
	return b.emit(w, test, "caller")
}

func (b *Backend) GenerateCallee(w io.Writer, test *abicafe.Test) error {
	return b.emit(w, test, "callee")
}

func (b *Backend) emit(w io.Writer, test *abicafe.Test, side string) error {
	g := gen.NewWriter("  ")
	g.WriteLine(fmt.Sprintf("// stub %s source for test %q, backend %q", side, test.Name, b.Name_))
	for _, f := range test.Funcs {
		g.WriteLine(fmt.Sprintf("// func %s inputs=%d has_output=%v", f.Name, len(f.Inputs), f.Output != nil))
	}
	_, err := io.WriteString(w, g.String())
	return err
}

func (b *Backend) CompileCaller(sourcePath, desiredLibName string) (string, error) {
	b.Compiled = append(b.Compiled, CompileRecord{Side: "caller", SourcePath: sourcePath, DesiredLibName: desiredLibName})
	return desiredLibName, nil
}

func (b *Backend) CompileCallee(sourcePath, desiredLibName string) (string, error) {
	b.Compiled = append(b.Compiled, CompileRecord{Side: "callee", SourcePath: sourcePath, DesiredLibName: desiredLibName})
	return desiredLibName, nil
}
