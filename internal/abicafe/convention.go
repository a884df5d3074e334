package abicafe

import "fmt"

// CallingConvention names a single ABI variant a subtest may be compiled
// under. Handwritten means "no codegen, use the checked-in sources";
// All expands to every concrete convention a given backend supports.
type CallingConvention int

const (
	ConventionC CallingConvention = iota
	ConventionRust
	ConventionFastcall
	ConventionStdcall
	ConventionVectorcall
	ConventionHandwritten
	ConventionAll
)

var conventionNames = map[CallingConvention]string{
	ConventionC:           "c",
	ConventionRust:        "rust",
	ConventionFastcall:    "fastcall",
	ConventionStdcall:     "stdcall",
	ConventionVectorcall:  "vectorcall",
	ConventionHandwritten: "handwritten",
	ConventionAll:         "all",
}

var conventionsByName = func() map[string]CallingConvention {
	m := make(map[string]CallingConvention, len(conventionNames))
	for cc, name := range conventionNames {
		m[name] = cc
	}
	return m
}()

func (cc CallingConvention) String() string {
	if name, ok := conventionNames[cc]; ok {
		return name
	}
	return fmt.Sprintf("CallingConvention(%d)", int(cc))
}

// ParseCallingConvention looks a convention up by its on-the-wire name,
// used both by the manifest loader and by generated-identifier derivation.
func ParseCallingConvention(name string) (CallingConvention, error) {
	if cc, ok := conventionsByName[name]; ok {
		return cc, nil
	}
	return 0, fmt.Errorf("unknown calling convention %q", name)
}

// Concrete reports the set of conventions a convention set actually
// stands for once ConventionAll is expanded against a backend's
// supported list. Handwritten never expands to anything else.
func Concrete(declared []CallingConvention, supportedByBackend []CallingConvention) []CallingConvention {
	out := make([]CallingConvention, 0, len(declared))
	for _, cc := range declared {
		if cc != ConventionAll {
			out = append(out, cc)
			continue
		}
		out = append(out, supportedByBackend...)
	}
	return out
}

// IsHandwritten reports whether any entry in conventions is Handwritten.
func IsHandwritten(conventions []CallingConvention) bool {
	for _, cc := range conventions {
		if cc == ConventionHandwritten {
			return true
		}
	}
	return false
}

// AllHandwritten reports whether every entry in conventions is Handwritten.
func AllHandwritten(conventions []CallingConvention) bool {
	for _, cc := range conventions {
		if cc != ConventionHandwritten {
			return false
		}
	}
	return true
}
