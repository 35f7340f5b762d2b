// Package report renders the outcome of a verification run for humans
// and machines. The text form mirrors the per-expectation ✓/✗ listing of
// the verify command; the JSON form has stable field order for golden
// comparison and tooling.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/checkpack/checkpack/internal/expect"
)

// Result is the outcome of one expectation.
type Result struct {
	Description string `json:"description"`
	Pass        bool   `json:"pass"`
	Cause       string `json:"cause,omitempty"`
}

// Report is the full outcome of one verification run.
type Report struct {
	RunID   string   `json:"run_id"`
	Unit    string   `json:"unit"`
	Results []Result `json:"results"`
	Passed  int      `json:"passed"`
	Failed  int      `json:"failed"`
}

// New builds a report from per-expectation outcomes. Each run gets a
// fresh random identifier for correlation in build logs.
func New(unit string, outcomes []expect.Outcome) *Report {
	r := &Report{
		RunID:   uuid.NewString(),
		Unit:    unit,
		Results: make([]Result, 0, len(outcomes)),
	}
	for _, o := range outcomes {
		result := Result{
			Description: o.Expectation.Description,
			Pass:        o.Err == nil,
		}
		if o.Err != nil {
			result.Cause = o.Err.Error()
			r.Failed++
		} else {
			r.Passed++
		}
		r.Results = append(r.Results, result)
	}
	return r
}

// Pass reports whether every expectation held.
func (r *Report) Pass() bool {
	return r.Failed == 0
}

// Render writes the human-readable form.
func (r *Report) Render(w io.Writer) {
	for _, result := range r.Results {
		if result.Pass {
			fmt.Fprintf(w, "✓ %s\n", result.Description)
		} else {
			fmt.Fprintf(w, "✗ %s\n", result.Description)
			fmt.Fprintf(w, "  %s\n", result.Cause)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Verification: %d passed, %d failed, %d total (%s)\n",
		r.Passed, r.Failed, len(r.Results), r.Unit)
}

// RenderJSON writes the indented JSON form.
func (r *Report) RenderJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
