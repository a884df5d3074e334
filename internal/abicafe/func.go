package abicafe

// Func is a subtest: a single function signature exercised under one or
// more calling conventions.
type Func struct {
	Name        string
	Conventions []CallingConvention
	Inputs      []Val
	Output      Val // nil means "no return value"
}

// Test is a named collection of subtests loaded from a manifest file.
type Test struct {
	Name  string
	Funcs []Func
}

// InconsistentStructDefinitionError reports that two Struct values of
// the same name disagree on field shape somewhere within one Test --
// a fatal, per-pairing preparation error (spec section 4.1, 7).
type InconsistentStructDefinitionError struct {
	Name    string
	OldDecl string
	NewDecl string
}

func (e *InconsistentStructDefinitionError) Error() string {
	return "inconsistent struct definition for " + e.Name + ": " + e.OldDecl + " vs " + e.NewDecl
}

// HandwrittenMixingError reports that a Test mixes Handwritten funcs
// with non-Handwritten ones, violating the invariant that within one
// Test either every Func declares Handwritten or none do.
type HandwrittenMixingError struct{ Test string }

func (e *HandwrittenMixingError) Error() string {
	return "test " + e.Test + " mixes the Handwritten convention with generated conventions"
}

// IsHandwritten reports whether t is a handwritten test, validating the
// all-or-nothing invariant along the way.
func (t *Test) IsHandwritten() (bool, error) {
	any, all := false, true
	for _, f := range t.Funcs {
		if IsHandwritten(f.Conventions) {
			any = true
		} else {
			all = false
		}
	}
	if any && !all {
		return false, &HandwrittenMixingError{Test: t.Name}
	}
	return any, nil
}

// CheckStructConsistency walks every Func's inputs and output and
// verifies that all Struct values sharing a name share field shapes.
// This is the ConsistentStructs invariant from spec section 3/8.
func (t *Test) CheckStructConsistency() error {
	seen := map[string]*StructVal{}
	check := func(v Val) error {
		for _, s := range CollectStructs(v) {
			prior, ok := seen[s.Name]
			if !ok {
				seen[s.Name] = s
				continue
			}
			if !prior.FieldsShapeEqual(s) {
				return &InconsistentStructDefinitionError{
					Name:    s.Name,
					OldDecl: prior.String(),
					NewDecl: s.String(),
				}
			}
		}
		return nil
	}
	for _, f := range t.Funcs {
		for _, in := range f.Inputs {
			if err := check(in); err != nil {
				return err
			}
		}
		if f.Output != nil {
			if err := check(f.Output); err != nil {
				return err
			}
		}
	}
	return nil
}
