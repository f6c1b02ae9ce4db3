// Package response maps a scoring result onto the moderation actions to
// take on the PR: which label to apply, what comment to post, and
// whether to close. Rendering and planning are pure; posting lives in
// ghclient.
package response

import (
	"fmt"
	"strings"

	"github.com/slopguard/slopguard/internal/scoring"
)

// Action describes what to do with an evaluated PR.
type Action struct {
	Label          string
	Comment        string // empty means no comment
	RequestChanges bool   // post the comment as a request-changes review
	Close          bool
}

// Label names per verdict.
const (
	LabelPass  = "slopguard:pass"
	LabelWarn  = "slopguard:warn"
	LabelFlag  = "slopguard:flag"
	LabelBlock = "slopguard:block"
)

// AllLabels lists every label slopguard manages, for replacing stale
// verdict labels on re-evaluation.
var AllLabels = []string{LabelPass, LabelWarn, LabelFlag, LabelBlock}

// Plan derives the action for a result. autoClose gates the close step
// on block verdicts; nothing else closes a PR.
func Plan(result scoring.Result, autoClose bool) Action {
	switch result.Verdict {
	case scoring.VerdictWarn:
		return Action{Label: LabelWarn, Comment: RenderComment(result)}
	case scoring.VerdictFlag:
		return Action{Label: LabelFlag, Comment: RenderComment(result), RequestChanges: true}
	case scoring.VerdictBlock:
		return Action{Label: LabelBlock, Comment: RenderComment(result), Close: autoClose}
	default:
		return Action{Label: LabelPass}
	}
}

// RenderComment renders the result as a markdown comment for the PR.
func RenderComment(result scoring.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Contribution quality check: %s\n\n", result.Verdict.Display())
	fmt.Fprintf(&b, "**Score: %d/100**\n\n", result.FinalScore)
	fmt.Fprintln(&b, result.Summary)

	flagged := 0
	for _, wc := range result.WeightedChecks {
		if wc.Score > 0 {
			flagged++
		}
	}
	if flagged > 0 {
		fmt.Fprintf(&b, "\n<details>\n<summary>All findings (%d)</summary>\n\n", flagged)
		fmt.Fprintln(&b, "| Check | Score | Weight | Reason |")
		fmt.Fprintln(&b, "|-------|-------|--------|--------|")
		for _, wc := range result.WeightedChecks {
			if wc.Score == 0 {
				continue
			}
			fmt.Fprintf(&b, "| %s | %d | %d | %s |\n",
				wc.Name.Display(), wc.Score, wc.Weight, escapeCell(wc.Reason))
		}
		fmt.Fprintln(&b, "\n</details>")
	}

	fmt.Fprintln(&b, "\n---")
	fmt.Fprintln(&b, "*Automated heuristic assessment. A maintainer will review before any final decision.*")

	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", `\|`), "\n", " ")
}
