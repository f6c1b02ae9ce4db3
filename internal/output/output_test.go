package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/slopguard/slopguard/internal/checks"
	"github.com/slopguard/slopguard/internal/model"
	"github.com/slopguard/slopguard/internal/scoring"
	"github.com/slopguard/slopguard/internal/service"
)

func sampleEvaluation() *service.Evaluation {
	return &service.Evaluation{
		Snapshot: model.Snapshot{
			PR: model.PullRequest{
				Number:    42,
				Title:     "Fix bug",
				Author:    "someone",
				Additions: 1500,
				Deletions: 600,
			},
		},
		Result: scoring.Result{
			FinalScore: 64,
			Verdict:    scoring.VerdictFlag,
			Summary:    "Multiple indicators of a low-effort contribution (score 64/100).",
			WeightedChecks: []scoring.WeightedCheck{
				{
					Result: checks.Result{Name: checks.Shotgun, Score: 90, Reason: "duplicate titles"},
					Weight: 90, WeightedScore: 81,
				},
				{
					Result: checks.Result{Name: checks.Velocity, Score: 0, Reason: "normal rate"},
					Weight: 80, WeightedScore: 0,
				},
			},
		},
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"table", false},
		{"", false},
		{"json", false},
		{"markdown", false},
		{"xml", true},
	}

	for _, tt := range tests {
		_, err := NewFormatter(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewFormatter(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(sampleEvaluation(), &buf); err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	var report struct {
		Number  int    `json:"number"`
		Score   int    `json:"score"`
		Verdict string `json:"verdict"`
		Checks  []struct {
			Name          string `json:"name"`
			WeightedScore int    `json:"weighted_score"`
		} `json:"checks"`
	}
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if report.Number != 42 || report.Score != 64 || report.Verdict != "flag" {
		t.Errorf("unexpected report header: %+v", report)
	}
	if len(report.Checks) != 2 || report.Checks[0].Name != "shotgun" || report.Checks[0].WeightedScore != 81 {
		t.Errorf("unexpected checks payload: %+v", report.Checks)
	}
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownFormatter{}).Format(sampleEvaluation(), &buf); err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"# PR #42: Fix bug", "Contribution quality check", "duplicate titles"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in markdown output:\n%s", want, out)
		}
	}
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(sampleEvaluation(), &buf); err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	out := stripAnsi(buf.String())
	for _, want := range []string{"FLAG", "score 64/100", "PR #42", "Shotgun Pattern", "duplicate titles"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in table output:\n%s", want, out)
		}
	}
}

func TestTableFormatterBypassed(t *testing.T) {
	eval := sampleEvaluation()
	eval.Bypassed = true
	eval.Result.Summary = "Author someone is allowlisted; evaluation skipped."

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(eval, &buf); err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	out := stripAnsi(buf.String())
	if !strings.Contains(out, "allowlisted") {
		t.Errorf("expected bypass summary, got:\n%s", out)
	}
	if strings.Contains(out, "Shotgun Pattern") {
		t.Errorf("bypassed run must not print the check table:\n%s", out)
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"this is far too long", 10, "this is..."},
	}

	for _, tt := range tests {
		if got := truncateToWidth(tt.input, tt.width); got != tt.want {
			t.Errorf("truncateToWidth(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
		}
	}
}

func TestPadRightIgnoresAnsi(t *testing.T) {
	colored := "\x1b[31m42\x1b[0m"
	padded := padRight(colored, 5)
	if displayWidth(padded) != 5 {
		t.Errorf("expected visible width 5, got %d", displayWidth(padded))
	}
}
