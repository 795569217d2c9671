package verify

import (
	"fmt"
	"strings"
)

// CheckResult records the outcome of one named invariant check.
type CheckResult struct {
	Name      string `json:"name"`
	Satisfied bool   `json:"satisfied"`
	Details   string `json:"details"`
}

// Report is the outcome of verifying a solved map against its source walk.
type Report struct {
	Passed bool          `json:"passed"`
	Checks []CheckResult `json:"checks"`
	Errors []string      `json:"errors"`
}

func newReport() *Report {
	return &Report{Passed: true, Checks: []CheckResult{}, Errors: []string{}}
}

func (r *Report) record(name string, satisfied bool, details string) {
	r.Checks = append(r.Checks, CheckResult{Name: name, Satisfied: satisfied, Details: details})
	if !satisfied {
		r.Passed = false
		r.Errors = append(r.Errors, fmt.Sprintf("%s: %s", name, details))
	}
}

// Summary renders a human-readable report, in the same overall shape as the
// teacher's validation.Summary: an overall status line followed by one line
// per check and a trailing error list.
func (r *Report) Summary() string {
	var b strings.Builder
	if r.Passed {
		b.WriteString("Status: PASSED\n")
	} else {
		b.WriteString("Status: FAILED\n")
	}
	for _, c := range r.Checks {
		status := "ok"
		if !c.Satisfied {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "  [%s] %s: %s\n", status, c.Name, c.Details)
	}
	if len(r.Errors) > 0 {
		b.WriteString("\nErrors:\n")
		for _, e := range r.Errors {
			fmt.Fprintf(&b, "  - %s\n", e)
		}
	}
	return b.String()
}

// FailedChecks returns the subset of Checks that did not pass.
func (r *Report) FailedChecks() []CheckResult {
	var failed []CheckResult
	for _, c := range r.Checks {
		if !c.Satisfied {
			failed = append(failed, c)
		}
	}
	return failed
}
