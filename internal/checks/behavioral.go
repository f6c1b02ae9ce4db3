package checks

import (
	"fmt"
	"strings"
	"time"

	"github.com/slopguard/slopguard/internal/model"
	"github.com/slopguard/slopguard/internal/similarity"
)

// Thresholds for the shotgun title/body comparisons.
const (
	shotgunTitleSimilarity = 0.85
	shotgunBodySimilarity  = 0.80
	shotgunMinBodyLen      = 20
)

// CheckVelocity scores how many PRs the author opened in the target repo
// during the trailing 24 hours. now is injected so tests can pin time.
func CheckVelocity(recentPRs []model.AuthorPR, now time.Time) Result {
	cutoff := now.Add(-24 * time.Hour)

	count := 0
	for _, pr := range recentPRs {
		if pr.CreatedAt.After(cutoff) {
			count++
		}
	}

	var score int
	switch {
	case count <= 3:
		score = 0
	case count <= 5:
		score = 50
	case count <= 10:
		score = 80
	default:
		score = 100
	}

	if score == 0 {
		return Result{Name: Velocity, Score: 0, Reason: fmt.Sprintf("Normal submission rate (%d PRs in 24h)", count)}
	}
	return Result{
		Name:   Velocity,
		Score:  score,
		Reason: fmt.Sprintf("%d PRs opened in the last 24 hours", count),
	}
}

// CheckAbandonment scores the author's history of closing PRs without
// merging them. Fewer than three closed PRs is not enough history to
// judge.
func CheckAbandonment(stats model.AbandonmentStats) Result {
	if stats.Total < 3 {
		return Result{Name: Abandonment, Score: 0, Reason: "Insufficient PR history to assess"}
	}

	var score int
	switch {
	case stats.Rate <= 30:
		score = 0
	case stats.Rate <= 50:
		score = 25
	case stats.Rate <= 70:
		score = 50
	case stats.Rate <= 90:
		score = 80
	default:
		score = 100
	}

	if score == 0 {
		return Result{
			Name:   Abandonment,
			Score:  0,
			Reason: fmt.Sprintf("Typical close rate (%d of %d closed without merge)", stats.Abandoned, stats.Total),
		}
	}
	return Result{
		Name:   Abandonment,
		Score:  score,
		Reason: fmt.Sprintf("%.0f%% of past PRs closed without merging (%d of %d)", stats.Rate, stats.Abandoned, stats.Total),
	}
}

// CheckShotgun detects near-identical titles or bodies submitted to other
// repositories, the signature of bulk automated contribution.
func CheckShotgun(pr model.PullRequest, otherPRs []model.AuthorPR) Result {
	others := make([]model.AuthorPR, 0, len(otherPRs))
	for _, o := range otherPRs {
		if o.Number != pr.Number {
			others = append(others, o)
		}
	}

	if len(others) == 0 {
		return Result{Name: Shotgun, Score: 0, Reason: "No other recent PRs to compare against"}
	}

	title := strings.ToLower(strings.TrimSpace(pr.Title))
	titleMatches, bodyMatches := 0, 0
	for _, o := range others {
		otherTitle := strings.ToLower(strings.TrimSpace(o.Title))
		if title == otherTitle || similarity.Score(title, otherTitle) > shotgunTitleSimilarity {
			titleMatches++
		}
		if len(pr.Body) > shotgunMinBodyLen && len(o.Body) > shotgunMinBodyLen &&
			similarity.Score(pr.Body, o.Body) > shotgunBodySimilarity {
			bodyMatches++
		}
	}

	var score int
	switch {
	case titleMatches == 0 && bodyMatches == 0:
		return Result{Name: Shotgun, Score: 0, Reason: fmt.Sprintf("No duplicate titles or bodies among %d recent PRs", len(others))}
	case titleMatches >= 3 || bodyMatches >= 2:
		score = 90
	case titleMatches >= 2 || float64(titleMatches)/float64(len(others)) > 0.5:
		score = 60
	default:
		score = 25
	}

	return Result{
		Name:  Shotgun,
		Score: score,
		Reason: fmt.Sprintf("Near-identical content in other repos: %d title matches, %d body matches across %d recent PRs",
			titleMatches, bodyMatches, len(others)),
	}
}

// CheckNewAccount scores the combination of account age and first-time
// contribution. A first PR from a days-old account is a common slop
// vector; a young account with prior activity in the repo is less so.
func CheckNewAccount(pr model.PullRequest, recentRepoPRs []model.AuthorPR, now time.Time) Result {
	ageDays := int(now.Sub(pr.AuthorCreatedAt).Hours() / 24)

	isFirstPR := true
	for _, o := range recentRepoPRs {
		if o.Number != pr.Number {
			isFirstPR = false
			break
		}
	}

	if ageDays >= 30 {
		return Result{Name: NewAccount, Score: 0, Reason: fmt.Sprintf("Established account (%d days old)", ageDays)}
	}

	if !isFirstPR {
		return Result{
			Name:   NewAccount,
			Score:  10,
			Reason: fmt.Sprintf("Account is %d days old but has prior activity here", ageDays),
		}
	}

	var score int
	switch {
	case ageDays >= 14:
		score = 30
	case ageDays >= 7:
		score = 50
	default:
		score = 70
	}

	return Result{
		Name:   NewAccount,
		Score:  score,
		Reason: fmt.Sprintf("First PR from an account created %d days ago", ageDays),
	}
}
