package abicafe

import "fmt"

// BuildError is the per-pairing fatal error taxonomy from spec section
// 7: every variant here aborts the current (test, caller, callee)
// pairing but leaves the rest of the run to continue. Each is its own
// named struct implementing error, in the style of this codebase's
// ParsingError/backtrackingError rather than a single catch-all wrapper,
// so callers can recover the structured fields with errors.As.
type BuildError struct {
	Op  string // which pipeline stage raised it: "generate", "compile", "link", "load", "run"
	Err error
}

func (e *BuildError) Error() string { return fmt.Sprintf("%s: %s", e.Op, e.Err) }
func (e *BuildError) Unwrap() error  { return e.Err }

// CompileError reports a non-zero exit from a backend's toolchain
// invocation (rustc, cc, ...). Backends map it from their own process
// errors; the driver never inspects stdout/stderr itself beyond
// surfacing them.
type CompileError struct {
	Toolchain string
	Stdout    string
	Stderr    string
	ExitCode  int
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s compile error (exit %d)\n%s\n%s", e.Toolchain, e.ExitCode, e.Stdout, e.Stderr)
}

// LoadError reports a failure to dlopen the harness shared object or to
// resolve its test_start entry symbol.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("failed to load %s: %s", e.Path, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// UnsupportedError reports that a backend cannot express a feature the
// test exercises (spec section 4.2) -- recoverable by skipping the
// pairing, never fatal to the run as a whole.
type UnsupportedError struct {
	Backend string
	Feature string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("backend %s does not support %s", e.Backend, e.Feature)
}

// HandwrittenSourceMissingError reports that a Handwritten-convention
// Func's expected checked-in source file does not exist under the
// configured handwritten tree (run.impls_root.handwritten).
type HandwrittenSourceMissingError struct {
	Path string
}

func (e *HandwrittenSourceMissingError) Error() string {
	return fmt.Sprintf("handwritten source not found: %s", e.Path)
}

// TestCountMismatchError reports that one of the four observation
// buffers closed with a different number of function frames than
// test.funcs had -- a fundamental protocol violation, fatal for the
// whole pairing rather than a single subtest (spec section 4.7 step 1).
type TestCountMismatchError struct {
	Expected                                      int
	CallerIn, CallerOut, CalleeIn, CalleeOut int
}

func (e *TestCountMismatchError) Error() string {
	return fmt.Sprintf(
		"wrong number of tests reported: expected %d, got (caller_in: %d, caller_out: %d, callee_in: %d, callee_out: %d)",
		e.Expected, e.CallerIn, e.CallerOut, e.CalleeIn, e.CalleeOut,
	)
}

// ParseErrorDetail carries the file name, full source text, and
// one-based (line, column) location of a manifest parse failure, so the
// driver can print the offending line and a caret under it (spec
// section 4.1).
type ParseErrorDetail struct {
	File   string
	Source string
	Line   int
	Column int
	Err    error
}

func (e *ParseErrorDetail) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Err)
}
func (e *ParseErrorDetail) Unwrap() error { return e.Err }
