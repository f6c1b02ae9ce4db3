// Package scoring combines individual check results into a single
// weighted score, verdict, and human-readable summary.
package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/slopguard/slopguard/internal/checks"
)

// Verdict classifies a final score into one of four severity bands.
type Verdict string

const (
	VerdictPass  Verdict = "pass"
	VerdictWarn  Verdict = "warn"
	VerdictFlag  Verdict = "flag"
	VerdictBlock Verdict = "block"
)

// Display returns a human-readable verdict label.
func (v Verdict) Display() string {
	switch v {
	case VerdictPass:
		return "Pass"
	case VerdictWarn:
		return "Warn"
	case VerdictFlag:
		return "Flag"
	case VerdictBlock:
		return "Block"
	default:
		return string(v)
	}
}

// Thresholds partition [0,100] into the four verdict bands. They must
// satisfy Warn <= Flag <= Block; config validation enforces this before
// the engine runs.
type Thresholds struct {
	Warn  int
	Flag  int
	Block int
}

// DefaultThresholds returns the standard verdict cut points.
func DefaultThresholds() Thresholds {
	return Thresholds{Warn: 30, Flag: 60, Block: 80}
}

// Weights maps each check to its contribution weight in [0,100].
// A weight of 0 disables the check.
type Weights map[checks.ID]int

// fallbackWeight applies to check names outside the known set.
const fallbackWeight = 50

// DefaultWeights returns the fixed per-check weights, reflecting the
// relative confidence of each heuristic.
func DefaultWeights() Weights {
	return Weights{
		checks.Velocity:           80,
		checks.Abandonment:        60,
		checks.Shotgun:            90,
		checks.NewAccount:         20,
		checks.Placeholder:        70,
		checks.HallucinatedImport: 90,
		checks.DocstringInflation: 40,
		checks.CopyPaste:          60,
		checks.GenericDescription: 50,
		checks.OversizedDiff:      60,
		checks.UnrelatedChanges:   40,
		checks.FormattingOnly:     30,
	}
}

// WeightedCheck is a check result with its resolved weight applied.
type WeightedCheck struct {
	checks.Result
	Weight        int `json:"weight"`
	WeightedScore int `json:"weightedScore"`
}

// Result is the complete outcome of one evaluation.
type Result struct {
	FinalScore     int             `json:"finalScore"`
	Verdict        Verdict         `json:"verdict"`
	Checks         []checks.Result `json:"checks"`
	WeightedChecks []WeightedCheck `json:"weightedChecks"`
	Summary        string          `json:"summary"`
}

// Calculate combines check results into a final score and verdict. The
// final score is a weight-normalized mean, so disabling checks never
// changes the scale. Checks with weight 0 are excluded entirely.
func Calculate(results []checks.Result, weights Weights, thresholds Thresholds) Result {
	var weighted []WeightedCheck
	totalWeight := 0
	totalProduct := 0

	for _, r := range results {
		weight, known := weights[r.Name]
		if !known {
			weight = fallbackWeight
		}
		if weight == 0 {
			continue
		}

		// Accumulate the exact score*weight product; dividing per check
		// would truncate and bias the mean downward.
		product := r.Score * weight
		ws := int(math.Round(float64(product) / 100))
		weighted = append(weighted, WeightedCheck{Result: r, Weight: weight, WeightedScore: ws})
		totalWeight += weight
		totalProduct += product
	}

	finalScore := 0
	if totalWeight > 0 {
		finalScore = int(math.Round(float64(totalProduct) / float64(totalWeight)))
	}

	verdict := GetVerdict(finalScore, thresholds)

	sort.SliceStable(weighted, func(i, j int) bool {
		return weighted[i].Score*weighted[i].Weight > weighted[j].Score*weighted[j].Weight
	})

	return Result{
		FinalScore:     finalScore,
		Verdict:        verdict,
		Checks:         results,
		WeightedChecks: weighted,
		Summary:        buildSummary(finalScore, verdict, weighted),
	}
}

// GetVerdict maps a final score onto the verdict bands. Band boundaries
// are inclusive: a score exactly at a threshold takes that band.
func GetVerdict(score int, t Thresholds) Verdict {
	switch {
	case score >= t.Block:
		return VerdictBlock
	case score >= t.Flag:
		return VerdictFlag
	case score >= t.Warn:
		return VerdictWarn
	default:
		return VerdictPass
	}
}

// CleanSummary is the fixed message used when no check found anything.
const CleanSummary = "No indicators of low-effort contribution detected."

const summaryTopChecks = 5

func buildSummary(finalScore int, verdict Verdict, weighted []WeightedCheck) string {
	flagged := make([]WeightedCheck, 0, len(weighted))
	for _, wc := range weighted {
		if wc.Score > 0 {
			flagged = append(flagged, wc)
		}
	}

	if len(flagged) == 0 {
		return CleanSummary
	}

	var b strings.Builder
	switch verdict {
	case VerdictBlock:
		fmt.Fprintf(&b, "Strong indicators of a low-effort contribution (score %d/100).\n", finalScore)
	case VerdictFlag:
		fmt.Fprintf(&b, "Multiple indicators of a low-effort contribution (score %d/100).\n", finalScore)
	case VerdictWarn:
		fmt.Fprintf(&b, "Some indicators of a low-effort contribution (score %d/100).\n", finalScore)
	default:
		fmt.Fprintf(&b, "Minor findings, overall acceptable (score %d/100).\n", finalScore)
	}

	if len(flagged) > summaryTopChecks {
		flagged = flagged[:summaryTopChecks]
	}
	for _, wc := range flagged {
		fmt.Fprintf(&b, "- %s: %d/100 (weight %d): %s\n", wc.Name.Display(), wc.Score, wc.Weight, wc.Reason)
	}

	return strings.TrimRight(b.String(), "\n")
}
