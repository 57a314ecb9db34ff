package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"synprobe/internal/scenario"
)

func TestWriteText(t *testing.T) {
	s := Summary{Results: scenario.Ledger{
		{Name: "Health Check", Passed: true},
		{Name: "Create PR", Passed: false},
	}}

	var buf bytes.Buffer
	s.WriteText(&buf)
	out := buf.String()

	if !strings.Contains(out, "Test Summary") {
		t.Error("missing summary banner")
	}
	if !strings.Contains(out, "[PASS] Health Check") {
		t.Error("missing pass line")
	}
	if !strings.Contains(out, "[FAIL] Create PR") {
		t.Error("missing fail line")
	}
	if !strings.Contains(out, "Results: 1 passed, 1 failed, 2 total") {
		t.Errorf("missing totals line in:\n%s", out)
	}
}

func TestWriteJSON(t *testing.T) {
	s := Summary{Results: scenario.Ledger{
		{Name: "Health Check", Passed: true},
		{Name: "Feed", Passed: false},
	}}

	var buf bytes.Buffer
	if err := s.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var got struct {
		Results []scenario.Result `json:"results"`
		Passed  int               `json:"passed"`
		Failed  int               `json:"failed"`
		Total   int               `json:"total"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Passed != 1 || got.Failed != 1 || got.Total != 2 {
		t.Errorf("unexpected counts: %+v", got)
	}
	if len(got.Results) != 2 || got.Results[0].Name != "Health Check" {
		t.Errorf("unexpected results: %+v", got.Results)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name   string
		ledger scenario.Ledger
		want   int
	}{
		{"all passed", scenario.Ledger{{Name: "a", Passed: true}}, 0},
		{"one failed", scenario.Ledger{{Name: "a", Passed: true}, {Name: "b", Passed: false}}, 1},
		{"empty ledger", nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Summary{Results: tt.ledger}).ExitCode(); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
