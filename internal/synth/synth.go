// Package synth implements the procedural test synthesizer spec section
// 9 describes: a deterministic function from a base value palette to a
// fixed catalog of subtest shapes, gated off by default since its output
// is meant to be checked in rather than regenerated on every run.
package synth

import (
	"fmt"
	"math/big"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
)

const (
	minTuple, maxTuple   = 2, 16
	minStruct, maxStruct = 1, 16
)

var allConventions = []abicafe.CallingConvention{abicafe.ConventionAll}

// Synthesize builds the fixed catalog (single value in/out, ref in/out,
// N-tuples, N-field structs, and byte/float-perturbed variants at every
// position of a "small" and "big" argument count, in value/struct/
// ref-to-struct form) over base, named name. Calling it twice with the
// same arguments produces an identical *abicafe.Test, since regeneration
// must be idempotent.
func Synthesize(name string, base []abicafe.Val, smallCount, bigCount int) *abicafe.Test {
	test := &abicafe.Test{Name: name}

	for i, v := range base {
		test.Funcs = append(test.Funcs, singleFunc(i, v))
		test.Funcs = append(test.Funcs, refFunc(i, v))
	}
	for n := minTuple; n <= maxTuple; n++ {
		test.Funcs = append(test.Funcs, tupleFunc(n, base))
	}
	for n := minStruct; n <= maxStruct; n++ {
		test.Funcs = append(test.Funcs, structFunc(name, n, base))
	}

	perturbations := []abicafe.Val{
		abicafe.NewInt(abicafe.Int8, false, big.NewInt(0x5a)),
		abicafe.NewFloat(abicafe.Float32, 3.0),
	}
	for _, count := range []int{smallCount, bigCount} {
		for pos := 0; pos < count; pos++ {
			for _, p := range perturbations {
				fields := perturbedTuple(base, count, pos, p)
				test.Funcs = append(test.Funcs, perturbedFuncs(name, count, pos, p, fields)...)
			}
		}
	}
	return test
}

func singleFunc(i int, v abicafe.Val) abicafe.Func {
	return abicafe.Func{
		Name:        fmt.Sprintf("single_%s_%d", abicafe.CanonicalName(v), i),
		Conventions: allConventions,
		Inputs:      []abicafe.Val{v},
		Output:      v,
	}
}

func refFunc(i int, v abicafe.Val) abicafe.Func {
	ref := abicafe.NewRef(v)
	return abicafe.Func{
		Name:        fmt.Sprintf("ref_%s_%d", abicafe.CanonicalName(v), i),
		Conventions: allConventions,
		Inputs:      []abicafe.Val{ref},
		Output:      ref,
	}
}

func tupleFunc(n int, base []abicafe.Val) abicafe.Func {
	return abicafe.Func{
		Name:        fmt.Sprintf("tuple_%d", n),
		Conventions: allConventions,
		Inputs:      cycle(base, n),
	}
}

func structFunc(name string, n int, base []abicafe.Val) abicafe.Func {
	fields := cycle(base, n)
	st := abicafe.NewStruct(fmt.Sprintf("%s_struct_%d", name, n), fields)
	return abicafe.Func{
		Name:        fmt.Sprintf("struct_%d", n),
		Conventions: allConventions,
		Inputs:      []abicafe.Val{st},
		Output:      st,
	}
}

func perturbedFuncs(name string, count, pos int, p abicafe.Val, fields []abicafe.Val) []abicafe.Func {
	tag := fmt.Sprintf("%d_%d_%s", count, pos, p.Shape())
	st := abicafe.NewStruct(fmt.Sprintf("%s_perturbed_struct_%s", name, tag), fields)
	return []abicafe.Func{
		{
			Name:        "perturbed_value_" + tag,
			Conventions: allConventions,
			Inputs:      fields,
		},
		{
			Name:        "perturbed_struct_" + tag,
			Conventions: allConventions,
			Inputs:      []abicafe.Val{st},
		},
		{
			Name:        "perturbed_refstruct_" + tag,
			Conventions: allConventions,
			Inputs:      []abicafe.Val{abicafe.NewRef(st)},
		},
	}
}

// cycle returns n values drawn from base in order, wrapping around, so
// every N-tuple/N-field-struct is built from the same deterministic
// rotation of the base palette regardless of N.
func cycle(base []abicafe.Val, n int) []abicafe.Val {
	out := make([]abicafe.Val, n)
	for i := range out {
		out[i] = base[i%len(base)]
	}
	return out
}

// perturbedTuple is cycle(base, count) with the value at pos replaced by
// p, the shape spec section 9 calls "a byte and a float inserted at
// every position".
func perturbedTuple(base []abicafe.Val, count, pos int, p abicafe.Val) []abicafe.Val {
	out := cycle(base, count)
	out[pos] = p
	return out
}
