// Package report renders driver.RunResult slices in the two formats spec
// section 6/7 describe: a human-readable stdout summary and a JSON
// document meant for CI to diff run over run.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/segmentio/encoding/json"

	"github.com/abi-cafe/abicafe-go/internal/driver"
)

// Summary aggregates every RunResult for one run, grouped by test.
type Summary struct {
	HostTriple string                   `json:"host_triple"`
	Tests      map[string][]PairOutcome `json:"tests"`
}

// PairOutcome is one pairing's outcome for one test, flattened to the
// fields a report consumer actually needs.
type PairOutcome struct {
	Caller       string           `json:"caller"`
	Callee       string           `json:"callee"`
	Passed       int              `json:"passed"`
	Failed       int              `json:"failed"`
	Error        string           `json:"error,omitempty"`
	SubtestCount int              `json:"subtest_count"`
	Subtests     []SubtestOutcome `json:"subtests,omitempty"`
}

// SubtestOutcome is one Func's pass/fail state within a pairing, named
// so WriteText's conditional breakdown can say which subtest failed
// instead of just how many.
type SubtestOutcome struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Error  string `json:"error,omitempty"`
}

// Collect flattens the per-test RunResult slices the driver produced
// into a Summary, independent of presentation format.
func Collect(hostTriple string, byTest map[string][]driver.RunResult) *Summary {
	s := &Summary{HostTriple: hostTriple, Tests: map[string][]PairOutcome{}}
	for test, results := range byTest {
		outcomes := make([]PairOutcome, 0, len(results))
		for _, r := range results {
			o := PairOutcome{Caller: r.Pair.Caller, Callee: r.Pair.Callee}
			switch {
			case r.Err != nil:
				o.Error = r.Err.Error()
			case r.Report != nil:
				o.SubtestCount = len(r.Report.Results)
				o.Passed = r.Report.Passed()
				o.Failed = o.SubtestCount - o.Passed
				o.Subtests = make([]SubtestOutcome, o.SubtestCount)
				for i, err := range r.Report.Results {
					so := SubtestOutcome{Passed: err == nil}
					if i < len(r.Report.Test.Funcs) {
						so.Name = r.Report.Test.Funcs[i].Name
					}
					if err != nil {
						so.Error = err.Error()
					}
					o.Subtests[i] = so
				}
			}
			outcomes = append(outcomes, o)
		}
		s.Tests[test] = outcomes
	}
	return s
}

// WriteJSON marshals s indented, matching this codebase's convention of
// pretty-printed machine output over a dense single line.
func WriteJSON(w io.Writer, s *Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteText renders the "total: P passed, F failed, T completely
// failed" two-level summary: one line per (test, pairing), then a
// grand total line.
func WriteText(w io.Writer, s *Summary) {
	names := make([]string, 0, len(s.Tests))
	for name := range s.Tests {
		names = append(names, name)
	}
	sort.Strings(names)

	totalPassed, totalFailed, totalBroken := 0, 0, 0
	for _, name := range names {
		for _, o := range s.Tests[name] {
			if o.Error != "" {
				totalBroken++
				fmt.Fprintf(w, "%s: %s <-> %s: FAILED (%s)\n", name, o.Caller, o.Callee, o.Error)
				continue
			}
			totalPassed += o.Passed
			totalFailed += o.Failed
			status := "ok"
			if o.Failed > 0 {
				status = "FAILED"
			}
			fmt.Fprintf(w, "%s: %s <-> %s: %s (%d/%d passed)\n", name, o.Caller, o.Callee, status, o.Passed, o.SubtestCount)
			if o.Failed == 0 {
				continue
			}
			for _, so := range o.Subtests {
				if so.Passed {
					continue
				}
				fmt.Fprintf(w, "  %s: FAILED (%s)\n", so.Name, so.Error)
			}
		}
	}
	fmt.Fprintf(w, "total: %d passed, %d failed, %d completely failed\n", totalPassed, totalFailed, totalBroken)
}
