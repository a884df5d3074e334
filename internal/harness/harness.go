// Package harness owns the fixed (never generated per-test) glue that
// links an independently compiled caller artifact and callee artifact
// into one shared object exporting the single test_start entry point
// the dynamic runner resolves (spec section 4.5 step 4, section 4.6).
package harness

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed c/harness.h c/harness.c.tmpl
var content embed.FS

// Header is the shared C typedefs every generated caller and callee
// source includes, so independently emitted translation units agree on
// the exact types crossing the write-back callback boundary.
var Header = mustRead("c/harness.h")

func mustRead(name string) string {
	data, err := content.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// Render produces the harness.c source for one pairing: a thin
// extern-and-forward shim naming callerEntry as the symbol to call
// through to. callerEntry is the caller backend's exported entry
// function for this (test, caller) combination (see internal/backend/c).
func Render(callerEntry string) (string, error) {
	tmplSrc, err := content.ReadFile("c/harness.c.tmpl")
	if err != nil {
		return "", err
	}
	tmpl, err := template.New("harness.c").Parse(string(tmplSrc))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ CallerEntry string }{CallerEntry: callerEntry}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// EntrySymbol derives the stable caller-side entry symbol name for a
// (test, backend) pair, matching what internal/backend/c emits.
func EntrySymbol(testName, backendName string) string {
	return fmt.Sprintf("%s_%s_caller_test_start", sanitize(testName), sanitize(backendName))
}

func sanitize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
