// Package manifest loads and serializes the textual structured-value
// syntax manifests describe Tests in (spec section 4.1, 6): field-named
// records and a tagged union dispatched on a "type" field, since the
// chosen concrete format (YAML) doesn't natively discriminate unions.
package manifest

import (
	"fmt"
	"math/big"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abi-cafe/abicafe-go/internal/abicafe"
)

// rawVal is the on-the-wire shape of a Val: a tag field ("type") plus
// whichever of the remaining fields that variant needs. Unused fields
// are simply omitted by the author of the manifest.
type rawVal struct {
	Type   string   `yaml:"type"`
	Width  int      `yaml:"width,omitempty"`
	Signed bool     `yaml:"signed,omitempty"`
	Value  string   `yaml:"value,omitempty"`
	Bool   bool     `yaml:"bool,omitempty"`
	Name   string   `yaml:"name,omitempty"`
	Fields []rawVal `yaml:"fields,omitempty"`
	Items  []rawVal `yaml:"items,omitempty"`
	Inner  *rawVal  `yaml:"inner,omitempty"`
}

type rawFunc struct {
	Name        string   `yaml:"name"`
	Conventions []string `yaml:"conventions"`
	Inputs      []rawVal `yaml:"inputs"`
	Output      *rawVal  `yaml:"output,omitempty"`
}

type rawTest struct {
	Name  string    `yaml:"name"`
	Funcs []rawFunc `yaml:"funcs"`
}

// LoadFile reads and parses the manifest at path, returning a *Test or a
// *abicafe.ParseErrorDetail carrying the file name, full source text, and
// a one-based (line, column) location so the caller can print the
// offending line and a caret, per spec section 4.1.
func LoadFile(path string) (*abicafe.Test, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// Parse decodes manifest source text (named file for error reporting)
// into a Test.
func Parse(file string, source []byte) (*abicafe.Test, error) {
	var raw rawTest
	if err := yaml.Unmarshal(source, &raw); err != nil {
		return nil, wrapParseError(file, source, err)
	}
	t, err := rawToTest(raw)
	if err != nil {
		return nil, wrapParseError(file, source, err)
	}
	return t, nil
}

func wrapParseError(file string, source []byte, err error) error {
	line := 1
	if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			line = n
		}
	}
	li := newLineIndex(source)
	loc := li.locationAt(0)
	loc.Line = line
	loc.Column = 1
	return &abicafe.ParseErrorDetail{
		File:   file,
		Source: string(source),
		Line:   loc.Line,
		Column: loc.Column,
		Err:    err,
	}
}

func rawToTest(raw rawTest) (*abicafe.Test, error) {
	t := &abicafe.Test{Name: raw.Name}
	for _, rf := range raw.Funcs {
		f, err := rawToFunc(rf)
		if err != nil {
			return nil, fmt.Errorf("func %q: %w", rf.Name, err)
		}
		t.Funcs = append(t.Funcs, *f)
	}
	if err := t.CheckStructConsistency(); err != nil {
		return nil, err
	}
	if _, err := t.IsHandwritten(); err != nil {
		return nil, err
	}
	return t, nil
}

func rawToFunc(rf rawFunc) (*abicafe.Func, error) {
	f := &abicafe.Func{Name: rf.Name}
	for _, name := range rf.Conventions {
		cc, err := abicafe.ParseCallingConvention(name)
		if err != nil {
			return nil, err
		}
		f.Conventions = append(f.Conventions, cc)
	}
	if len(f.Conventions) == 0 {
		return nil, fmt.Errorf("conventions must be non-empty")
	}
	for i, rv := range rf.Inputs {
		v, err := rawToVal(rv)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		f.Inputs = append(f.Inputs, v)
	}
	if rf.Output != nil {
		v, err := rawToVal(*rf.Output)
		if err != nil {
			return nil, fmt.Errorf("output: %w", err)
		}
		f.Output = v
	}
	return f, nil
}

func rawToVal(rv rawVal) (abicafe.Val, error) {
	switch strings.ToLower(rv.Type) {
	case "int":
		lit, ok := new(big.Int).SetString(strings.TrimSpace(rv.Value), 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer literal %q", rv.Value)
		}
		width, err := intWidth(rv.Width)
		if err != nil {
			return nil, err
		}
		return abicafe.NewInt(width, rv.Signed, lit), nil
	case "float":
		lit, err := strconv.ParseFloat(strings.TrimSpace(rv.Value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float literal %q: %w", rv.Value, err)
		}
		width, err := floatWidth(rv.Width)
		if err != nil {
			return nil, err
		}
		return abicafe.NewFloat(width, lit), nil
	case "bool":
		return abicafe.NewBool(rv.Bool), nil
	case "ptr":
		lit, err := strconv.ParseUint(strings.TrimSpace(rv.Value), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid pointer literal %q: %w", rv.Value, err)
		}
		return abicafe.NewPtr(lit), nil
	case "array":
		if len(rv.Items) == 0 {
			return nil, fmt.Errorf("arrays must have length > 0")
		}
		elems := make([]abicafe.Val, 0, len(rv.Items))
		for i, item := range rv.Items {
			e, err := rawToVal(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			elems = append(elems, e)
		}
		return abicafe.NewArray(elems)
	case "struct":
		if rv.Name == "" {
			return nil, fmt.Errorf("struct requires a name")
		}
		fields := make([]abicafe.Val, 0, len(rv.Fields))
		for i, field := range rv.Fields {
			fv, err := rawToVal(field)
			if err != nil {
				return nil, fmt.Errorf("field %d: %w", i, err)
			}
			fields = append(fields, fv)
		}
		return abicafe.NewStruct(rv.Name, fields), nil
	case "ref":
		if rv.Inner == nil {
			return nil, fmt.Errorf("ref requires an inner value")
		}
		inner, err := rawToVal(*rv.Inner)
		if err != nil {
			return nil, fmt.Errorf("inner: %w", err)
		}
		return abicafe.NewRef(inner), nil
	default:
		return nil, fmt.Errorf("unknown value type %q", rv.Type)
	}
}

func intWidth(w int) (abicafe.IntWidth, error) {
	switch w {
	case 8, 16, 32, 64, 128:
		return abicafe.IntWidth(w), nil
	default:
		return 0, fmt.Errorf("invalid int width %d", w)
	}
}

func floatWidth(w int) (abicafe.FloatWidth, error) {
	switch w {
	case 32, 64:
		return abicafe.FloatWidth(w), nil
	default:
		return 0, fmt.Errorf("invalid float width %d", w)
	}
}
