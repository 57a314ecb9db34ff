// Package report renders the run summary and decides the exit status.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"synprobe/internal/scenario"
)

// Summary wraps a completed run's ledger.
type Summary struct {
	Results scenario.Ledger
}

// WriteText renders the human-readable summary.
func (s Summary) WriteText(w io.Writer) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(w, "\n%s\n  Test Summary\n%s\n\n", rule, rule)

	for _, r := range s.Results {
		status := "[PASS]"
		if !r.Passed {
			status = "[FAIL]"
		}
		fmt.Fprintf(w, "  %s %s\n", status, r.Name)
	}

	fmt.Fprintf(w, "\nResults: %d passed, %d failed, %d total\n",
		s.Results.Passed(), s.Results.Failed(), len(s.Results))
}

// WriteJSON renders the machine-readable summary.
func (s Summary) WriteJSON(w io.Writer) error {
	out := struct {
		Results []scenario.Result `json:"results"`
		Passed  int               `json:"passed"`
		Failed  int               `json:"failed"`
		Total   int               `json:"total"`
	}{
		Results: s.Results,
		Passed:  s.Results.Passed(),
		Failed:  s.Results.Failed(),
		Total:   len(s.Results),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ExitCode is 0 only when every ledger entry passed.
func (s Summary) ExitCode() int {
	if len(s.Results) > 0 && s.Results.AllPassed() {
		return 0
	}
	return 1
}
