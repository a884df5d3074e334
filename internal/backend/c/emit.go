// Package c is the reference Backend implementation targeting C99 (spec
// section 9's primary reference backend). It emits one translation unit
// per side per pairing, compiles each with the host cc, and relies on
// internal/harness for the fixed linking shim that exposes test_start.
//
// Struct layout, integer width, and calling-convention attribute
// placement are left to the platform C compiler rather than hand-rolled
// -- the whole point of an ABI conformance tester is to observe what the
// toolchain actually does, not to second-guess it.
package c

import (
	"fmt"
	"io"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
	"github.com/abi-cafe/abicafe-go/internal/gen"
	"github.com/abi-cafe/abicafe-go/internal/harness"
)

// Backend is the C99 reference backend.
type Backend struct{}

// New returns the C backend. It carries no state: every generate/compile
// call is self-contained given a *abicafe.Test.
func New() *Backend { return &Backend{} }

func (b *Backend) Name() string      { return "c" }
func (b *Backend) SourceExt() string { return "c" }

// SupportedConventions leaves out Vectorcall (an MSVC-only calling
// convention with no GCC/Clang attribute equivalent on the platforms
// this tester targets) and Rust (a different source language entirely).
// A Func declaring either against this backend fails generation with
// abicafe.UnsupportedError, which the driver treats as a skipped pairing
// rather than a fatal run error. Handwritten is handled further up, in
// internal/driver.Generate, which routes a handwritten Test to the
// checked-in source tree and never calls GenerateCaller/GenerateCallee
// for it; expand still rejects ConventionHandwritten as a backstop in
// case that routing is ever bypassed.
func (b *Backend) SupportedConventions() []abicafe.CallingConvention {
	return []abicafe.CallingConvention{
		abicafe.ConventionC,
		abicafe.ConventionFastcall,
		abicafe.ConventionStdcall,
	}
}

// subtest is one expanded (Func, concrete CallingConvention) pair -- the
// actual unit of codegen, since a Func declaring ConventionAll
// or several explicit conventions compiles to one real function per
// convention, each observed as its own function frame.
type subtest struct {
	fn  abicafe.Func
	cc  abicafe.CallingConvention
	sym string
}

func (b *Backend) expand(test *abicafe.Test) ([]subtest, error) {
	var out []subtest
	for _, f := range test.Funcs {
		for _, cc := range abicafe.Concrete(f.Conventions, b.SupportedConventions()) {
			if cc == abicafe.ConventionVectorcall || cc == abicafe.ConventionRust || cc == abicafe.ConventionHandwritten {
				return nil, &abicafe.UnsupportedError{Backend: b.Name(), Feature: cc.String()}
			}
			out = append(out, subtest{
				fn:  f,
				cc:  cc,
				sym: calleeSymbol(test.Name, f.Name, cc),
			})
		}
	}
	return out, nil
}

func calleeSymbol(testName, funcName string, cc abicafe.CallingConvention) string {
	return fmt.Sprintf("abicafe_%s_%s_%s_callee", sanitizeIdent(testName), sanitizeIdent(funcName), cc.String())
}

func calleeInitSymbol(testName string) string {
	return fmt.Sprintf("abicafe_%s_c_callee_init", sanitizeIdent(testName))
}

// conventionAttr renders the GCC/Clang calling-convention attribute for
// cc, or the empty string for the platform's default (CallingConvention_C).
func conventionAttr(cc abicafe.CallingConvention) string {
	switch cc {
	case abicafe.ConventionFastcall:
		return "__attribute__((fastcall)) "
	case abicafe.ConventionStdcall:
		return "__attribute__((stdcall)) "
	default:
		return ""
	}
}

func writePrelude(g *gen.Writer, test *abicafe.Test) {
	g.WriteLine(fmt.Sprintf("/* generated for test %q -- do not edit by hand */", test.Name))
	g.WriteLine(`#include <stdbool.h>`)
	g.WriteLine(`#include <stdint.h>`)
	g.WriteLine(`#include <stddef.h>`)
	g.WriteLine(harness.Header)
	writeStructTypedefs(g, test)
}

// writeStructTypedefs emits one typedef per distinct struct name reached
// from any Func's inputs or output. Test.CheckStructConsistency is
// assumed to have already rejected field-shape disagreement under one
// name, so the first occurrence found is authoritative.
func writeStructTypedefs(g *gen.Writer, test *abicafe.Test) {
	seen := map[string]bool{}
	emit := func(v abicafe.Val) {
		for _, s := range abicafe.CollectStructs(v) {
			if seen[s.Name] {
				continue
			}
			seen[s.Name] = true
			g.WriteIndentedLine(fmt.Sprintf("typedef struct {"))
			g.Indent()
			for i, f := range s.Fields {
				g.WriteIndentedLine(fmt.Sprintf("%s;", declare(fmt.Sprintf("f%d", i), f)))
			}
			g.Unindent()
			g.WriteIndentedLine(fmt.Sprintf("} %s;", structTypeName(s.Name)))
		}
	}
	for _, f := range test.Funcs {
		for _, in := range f.Inputs {
			emit(in)
		}
		if f.Output != nil {
			emit(f.Output)
		}
	}
}

func paramList(sub subtest) string {
	if len(sub.fn.Inputs) == 0 {
		return "void"
	}
	parts := make([]string, len(sub.fn.Inputs))
	for i, in := range sub.fn.Inputs {
		parts[i] = declare(fmt.Sprintf("p%d", i), in)
	}
	return joinComma(parts)
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

func returnType(sub subtest) string {
	if sub.fn.Output == nil {
		return "void"
	}
	return cType(sub.fn.Output)
}

// GenerateCaller emits the entry point harness.c forwards to
// (harness.EntrySymbol(test.Name, "c")): it initializes the callee side
// once, then for every expanded subtest constructs the input literals,
// calls across the extern-declared callee symbol, and writes every
// input and output to the observation protocol in source order.
func (b *Backend) GenerateCaller(w io.Writer, test *abicafe.Test) error {
	subs, err := b.expand(test)
	if err != nil {
		return err
	}
	g := gen.NewWriter("    ")
	writePrelude(g, test)

	initSym := calleeInitSymbol(test.Name)
	g.WriteLine(fmt.Sprintf("extern void %s(write_field_fn, finished_val_fn, finished_func_fn, void*, void*);", initSym))
	for _, sub := range subs {
		g.WriteLine(fmt.Sprintf(
			"extern %s%s %s(%s);",
			conventionAttr(sub.cc), returnType(sub), sub.sym, paramList(sub),
		))
	}

	entry := harness.EntrySymbol(test.Name, b.Name())
	g.WriteLine(`__attribute__((visibility("default")))`)
	g.WriteLine(fmt.Sprintf(
		"void %s(write_field_fn wf, finished_val_fn fv, finished_func_fn ff, void *caller_in, void *caller_out, void *callee_in, void *callee_out) {",
		entry,
	))
	g.Indent()
	g.WriteIndentedLine(fmt.Sprintf("%s(wf, fv, ff, callee_in, callee_out);", initSym))

	for subIdx, sub := range subs {
		g.WriteIndentedLine(fmt.Sprintf("{ /* %s (%s) */", sub.fn.Name, sub.cc))
		g.Indent()

		argNames := make([]string, len(sub.fn.Inputs))
		for i, in := range sub.fn.Inputs {
			name := fmt.Sprintf("in%d_%d", subIdx, i)
			argNames[i] = declareArgument(g, name, in)
			emitValue(g, "caller_in", "wf", "fv", argNames[i], in)
		}

		call := fmt.Sprintf("%s(%s)", sub.sym, joinComma(argNames))
		if sub.fn.Output != nil {
			outName := fmt.Sprintf("out%d", subIdx)
			g.WriteIndentedLine(fmt.Sprintf("%s = %s;", declare(outName, sub.fn.Output), call))
			emitValue(g, "caller_out", "wf", "fv", outName, sub.fn.Output)
		} else {
			g.WriteIndentedLine(call + ";")
		}
		g.WriteIndentedLine("ff(caller_in, caller_out);")

		g.Unindent()
		g.WriteIndentedLine("}")
	}

	g.Unindent()
	g.WriteLine("}")
	_, err = io.WriteString(w, g.String())
	return err
}

// declareArgument emits the local variable holding one input literal and
// returns the C expression a call site should pass for it: the variable
// itself for scalars/structs/arrays, or its address for a Ref, since
// RefVal's literal lives in the referent rather than in a pointer.
func declareArgument(g *gen.Writer, name string, v abicafe.Val) string {
	if ref, ok := v.(*abicafe.RefVal); ok {
		referentName := name + "_referent"
		g.WriteIndentedLine(fmt.Sprintf("%s = %s;", declare(referentName, ref.Inner), cLiteral(ref.Inner)))
		g.WriteIndentedLine(fmt.Sprintf("%s = &%s;", declare(name, v), referentName))
		return name
	}
	g.WriteIndentedLine(fmt.Sprintf("%s = %s;", declare(name, v), cLiteral(v)))
	return name
}

// emitValue writes every leaf field of the value currently held by expr
// to buf (in source order) and finishes the value, mirroring what spec
// section 4.4 requires an emitter do for one argument or return value.
func emitValue(g *gen.Writer, buf, wf, fv, expr string, v abicafe.Val) {
	emitLeafWrites(g, buf, wf, expr, v)
	g.WriteIndentedLine(fmt.Sprintf("%s(%s);", fv, buf))
}

func emitLeafWrites(g *gen.Writer, buf, wf, expr string, v abicafe.Val) {
	switch n := v.(type) {
	case *abicafe.ArrayVal:
		for i := range n.Elements {
			emitLeafWrites(g, buf, wf, fmt.Sprintf("%s[%d]", expr, i), n.Elements[i])
		}
	case *abicafe.StructVal:
		for i, f := range n.Fields {
			emitLeafWrites(g, buf, wf, fmt.Sprintf("%s.f%d", expr, i), f)
		}
	case *abicafe.RefVal:
		emitLeafWrites(g, buf, wf, fmt.Sprintf("(*%s)", expr), n.Inner)
	default:
		g.WriteIndentedLine(fmt.Sprintf(
			"%s(%s, (const uint8_t*)&(%s), (uint32_t)sizeof(%s));", wf, buf, expr, expr,
		))
	}
}

// GenerateCallee emits _callee_init (stashing the callbacks and buffer
// pointers this translation unit's exported functions need, since their
// real-ABI signatures have no room for extra parameters) plus one
// exported function per expanded subtest: it writes every received
// input to the observation protocol, returns the manifest's Output
// literal, and writes that too.
func (b *Backend) GenerateCallee(w io.Writer, test *abicafe.Test) error {
	subs, err := b.expand(test)
	if err != nil {
		return err
	}
	g := gen.NewWriter("    ")
	writePrelude(g, test)

	g.WriteLine("static write_field_fn g_wf;")
	g.WriteLine("static finished_val_fn g_fv;")
	g.WriteLine("static finished_func_fn g_ff;")
	g.WriteLine("static void *g_callee_in;")
	g.WriteLine("static void *g_callee_out;")

	initSym := calleeInitSymbol(test.Name)
	g.WriteLine(fmt.Sprintf(
		"void %s(write_field_fn wf, finished_val_fn fv, finished_func_fn ff, void *callee_in, void *callee_out) {",
		initSym,
	))
	g.Indent()
	g.WriteIndentedLine("g_wf = wf; g_fv = fv; g_ff = ff;")
	g.WriteIndentedLine("g_callee_in = callee_in; g_callee_out = callee_out;")
	g.Unindent()
	g.WriteLine("}")

	for subIdx, sub := range subs {
		g.WriteLine(fmt.Sprintf(
			"%s%s %s(%s) {", conventionAttr(sub.cc), returnType(sub), sub.sym, paramList(sub),
		))
		g.Indent()
		for i, in := range sub.fn.Inputs {
			emitValue(g, "g_callee_in", "g_wf", "g_fv", fmt.Sprintf("p%d", i), in)
		}
		if sub.fn.Output != nil {
			outName := fmt.Sprintf("out%d", subIdx)
			if ref, ok := sub.fn.Output.(*abicafe.RefVal); ok {
				referentName := outName + "_referent"
				g.WriteIndentedLine(fmt.Sprintf("static %s = %s;", declare(referentName, ref.Inner), cLiteral(ref.Inner)))
				g.WriteIndentedLine(fmt.Sprintf("%s = &%s;", declare(outName, ref), referentName))
			} else {
				g.WriteIndentedLine(fmt.Sprintf("%s = %s;", declare(outName, sub.fn.Output), cLiteral(sub.fn.Output)))
			}
			emitValue(g, "g_callee_out", "g_wf", "g_fv", outName, sub.fn.Output)
			g.WriteIndentedLine("g_ff(g_callee_in, g_callee_out);")
			g.WriteIndentedLine(fmt.Sprintf("return %s;", outName))
		} else {
			g.WriteIndentedLine("g_ff(g_callee_in, g_callee_out);")
		}
		g.Unindent()
		g.WriteLine("}")
	}

	_, err = io.WriteString(w, g.String())
	return err
}
