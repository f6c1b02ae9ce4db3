// Package engine runs every check over a pull request snapshot and
// aggregates the results. It is pure: the same snapshot and clock always
// produce the same result, and nothing here performs I/O.
package engine

import (
	"time"

	"github.com/slopguard/slopguard/internal/checks"
	"github.com/slopguard/slopguard/internal/model"
	"github.com/slopguard/slopguard/internal/scoring"
)

// Engine evaluates pull request snapshots against a fixed weight and
// threshold configuration.
type Engine struct {
	weights    scoring.Weights
	thresholds scoring.Thresholds
}

// New creates an engine with the given weights and thresholds.
func New(weights scoring.Weights, thresholds scoring.Thresholds) *Engine {
	return &Engine{weights: weights, thresholds: thresholds}
}

// Default creates an engine with the standard weights and thresholds.
func Default() *Engine {
	return New(scoring.DefaultWeights(), scoring.DefaultThresholds())
}

// Evaluate runs all twelve checks over the snapshot. The checks are
// independent; now is threaded to the time-relative ones so callers and
// tests control the clock.
func (e *Engine) Evaluate(snap model.Snapshot, now time.Time) scoring.Result {
	results := []checks.Result{
		checks.CheckVelocity(snap.RecentRepoPRs, now),
		checks.CheckAbandonment(snap.Abandonment),
		checks.CheckShotgun(snap.PR, snap.RecentPublicPRs),
		checks.CheckNewAccount(snap.PR, snap.RecentRepoPRs, now),
		checks.CheckPlaceholder(snap.Files),
		checks.CheckHallucinatedImport(snap.Files, snap.ProjectDeps),
		checks.CheckDocstringInflation(snap.Files),
		checks.CheckCopyPaste(snap.Files),
		checks.CheckGenericDescription(snap.PR),
		checks.CheckOversizedDiff(snap.PR),
		checks.CheckUnrelatedChanges(snap.Files),
		checks.CheckFormattingOnly(snap.PR, snap.Files),
	}

	return scoring.Calculate(results, e.weights, e.thresholds)
}

// Bypass returns the result used when an allowlisted account skips
// evaluation entirely.
func Bypass(login string) scoring.Result {
	return scoring.Result{
		FinalScore: 0,
		Verdict:    scoring.VerdictPass,
		Summary:    "Author " + login + " is allowlisted; evaluation skipped.",
	}
}
