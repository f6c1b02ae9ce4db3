// Package checks implements the twelve heuristic analyzers that score a
// pull request for low-effort, machine-generated contribution patterns.
// Every check is a pure function of its inputs: no I/O, no shared state,
// and a score bounded to [0,100].
package checks

// ID identifies a check. The set is closed; the aggregator and display
// maps switch exhaustively over it.
type ID string

const (
	Velocity           ID = "velocity"
	Abandonment        ID = "abandonment"
	Shotgun            ID = "shotgun"
	NewAccount         ID = "new_account"
	Placeholder        ID = "placeholder"
	HallucinatedImport ID = "hallucinated_import"
	DocstringInflation ID = "docstring_inflation"
	CopyPaste          ID = "copy_paste"
	GenericDescription ID = "generic_description"
	OversizedDiff      ID = "oversized_diff"
	UnrelatedChanges   ID = "unrelated_changes"
	FormattingOnly     ID = "formatting_only"
)

// All lists every check in evaluation order.
var All = []ID{
	Velocity,
	Abandonment,
	Shotgun,
	NewAccount,
	Placeholder,
	HallucinatedImport,
	DocstringInflation,
	CopyPaste,
	GenericDescription,
	OversizedDiff,
	UnrelatedChanges,
	FormattingOnly,
}

// Display returns a human-readable name for the check.
func (id ID) Display() string {
	switch id {
	case Velocity:
		return "PR Velocity"
	case Abandonment:
		return "Abandonment History"
	case Shotgun:
		return "Shotgun Pattern"
	case NewAccount:
		return "New Account"
	case Placeholder:
		return "Placeholder Code"
	case HallucinatedImport:
		return "Hallucinated Imports"
	case DocstringInflation:
		return "Comment Inflation"
	case CopyPaste:
		return "Internal Duplication"
	case GenericDescription:
		return "Generic Description"
	case OversizedDiff:
		return "Oversized Diff"
	case UnrelatedChanges:
		return "Scattered Changes"
	case FormattingOnly:
		return "Formatting Only"
	default:
		return string(id)
	}
}

// Result is the outcome of a single check. Reason is a self-contained
// explanation and is never empty when Score is above zero.
type Result struct {
	Name   ID     `json:"name"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}
