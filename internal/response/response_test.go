package response

import (
	"strings"
	"testing"

	"github.com/slopguard/slopguard/internal/checks"
	"github.com/slopguard/slopguard/internal/scoring"
)

func resultWithVerdict(v scoring.Verdict, score int) scoring.Result {
	return scoring.Result{
		FinalScore: score,
		Verdict:    v,
		Summary:    "summary text",
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
	}
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name           string
		verdict        scoring.Verdict
		autoClose      bool
		wantLabel      string
		wantComment    bool
		wantReqChanges bool
		wantClose      bool
	}{
		{"pass is label only", scoring.VerdictPass, true, LabelPass, false, false, false},
		{"warn comments", scoring.VerdictWarn, false, LabelWarn, true, false, false},
		{"flag requests changes", scoring.VerdictFlag, false, LabelFlag, true, true, false},
		{"block without auto close", scoring.VerdictBlock, false, LabelBlock, true, false, false},
		{"block with auto close", scoring.VerdictBlock, true, LabelBlock, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := Plan(resultWithVerdict(tt.verdict, 70), tt.autoClose)
			if action.Label != tt.wantLabel {
				t.Errorf("expected label %q, got %q", tt.wantLabel, action.Label)
			}
			if (action.Comment != "") != tt.wantComment {
				t.Errorf("expected comment=%v, got %q", tt.wantComment, action.Comment)
			}
			if action.RequestChanges != tt.wantReqChanges {
				t.Errorf("expected RequestChanges=%v", tt.wantReqChanges)
			}
			if action.Close != tt.wantClose {
				t.Errorf("expected Close=%v, got %v", tt.wantClose, action.Close)
			}
		})
	}
}

func TestRenderComment(t *testing.T) {
	comment := RenderComment(resultWithVerdict(scoring.VerdictFlag, 65))

	for _, want := range []string{
		"## Contribution quality check: Flag",
		"**Score: 65/100**",
		"summary text",
		"Shotgun Pattern",
		"duplicate titles",
	} {
		if !strings.Contains(comment, want) {
			t.Errorf("expected %q in comment, got:\n%s", want, comment)
		}
	}

	// Zero-score checks stay out of the findings table.
	if strings.Contains(comment, "normal rate") {
		t.Errorf("zero-score check leaked into comment:\n%s", comment)
	}
}

func TestRenderCommentEscapesTableCells(t *testing.T) {
	result := scoring.Result{
		FinalScore: 50,
		Verdict:    scoring.VerdictWarn,
		Summary:    "summary",
		WeightedChecks: []scoring.WeightedCheck{
			{
				Result: checks.Result{Name: checks.Placeholder, Score: 40, Reason: "line | with pipe\nand newline"},
				Weight: 70, WeightedScore: 28,
			},
		},
	}
	comment := RenderComment(result)
	if !strings.Contains(comment, `line \| with pipe and newline`) {
		t.Errorf("expected escaped cell content, got:\n%s", comment)
	}
}

func TestAllLabelsCoverEveryVerdict(t *testing.T) {
	for _, v := range []scoring.Verdict{scoring.VerdictPass, scoring.VerdictWarn, scoring.VerdictFlag, scoring.VerdictBlock} {
		action := Plan(scoring.Result{Verdict: v}, false)
		found := false
		for _, l := range AllLabels {
			if l == action.Label {
				found = true
			}
		}
		if !found {
			t.Errorf("label %q for verdict %s missing from AllLabels", action.Label, v)
		}
	}
}
