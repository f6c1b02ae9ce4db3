package ghclient

import (
	"context"
	"fmt"
	"time"

	gh "github.com/google/go-github/v57/github"

	"github.com/slopguard/slopguard/internal/log"
	"github.com/slopguard/slopguard/internal/model"
)

// searchAuthorPRs runs a PR search query and converts the results.
func (c *Client) searchAuthorPRs(ctx context.Context, query string) ([]model.AuthorPR, error) {
	opts := &gh.SearchOptions{
		Sort:  "created",
		Order: "desc",
		ListOptions: gh.ListOptions{
			PerPage: 100,
		},
	}

	var prs []model.AuthorPR
	for {
		result, resp, err := c.client.Search.Issues(ctx, query, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to search PRs (%s): %w", query, err)
		}

		for _, issue := range result.Issues {
			prs = append(prs, model.AuthorPR{
				Number:    issue.GetNumber(),
				Title:     issue.GetTitle(),
				Body:      issue.GetBody(),
				Repo:      repoFromURL(issue.GetRepositoryURL()),
				CreatedAt: issue.GetCreatedAt().Time,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return prs, nil
}

// RecentRepoPRs fetches the author's PRs in the target repo created
// within the trailing 24 hours.
func (c *Client) RecentRepoPRs(ctx context.Context, owner, repo, login string, now time.Time) ([]model.AuthorPR, error) {
	since := now.Add(-24 * time.Hour).UTC().Format(time.RFC3339)
	query := fmt.Sprintf("repo:%s/%s author:%s type:pr created:>=%s", owner, repo, login, since)

	prs, err := c.searchAuthorPRs(ctx, query)
	if err != nil {
		return nil, err
	}
	log.Debug("fetched same-repo PRs", "count", len(prs))
	return prs, nil
}

// RecentPublicPRs fetches the author's public PRs across all repos
// created within the trailing 7 days.
func (c *Client) RecentPublicPRs(ctx context.Context, login string, now time.Time) ([]model.AuthorPR, error) {
	since := now.Add(-7 * 24 * time.Hour).UTC().Format(time.RFC3339)
	query := fmt.Sprintf("author:%s type:pr is:public created:>=%s", login, since)

	prs, err := c.searchAuthorPRs(ctx, query)
	if err != nil {
		return nil, err
	}
	log.Debug("fetched cross-repo PRs", "count", len(prs))
	return prs, nil
}

// FetchAbandonmentStats counts the author's closed PRs in the repo and
// how many closed without merging.
func (c *Client) FetchAbandonmentStats(ctx context.Context, owner, repo, login string) (model.AbandonmentStats, error) {
	countOpts := &gh.SearchOptions{ListOptions: gh.ListOptions{PerPage: 1}}

	closedQuery := fmt.Sprintf("repo:%s/%s author:%s type:pr is:closed", owner, repo, login)
	closed, _, err := c.client.Search.Issues(ctx, closedQuery, countOpts)
	if err != nil {
		return model.AbandonmentStats{}, fmt.Errorf("failed to count closed PRs: %w", err)
	}

	abandonedQuery := closedQuery + " is:unmerged"
	abandoned, _, err := c.client.Search.Issues(ctx, abandonedQuery, countOpts)
	if err != nil {
		return model.AbandonmentStats{}, fmt.Errorf("failed to count unmerged PRs: %w", err)
	}

	stats := model.AbandonmentStats{
		Total:     closed.GetTotal(),
		Abandoned: abandoned.GetTotal(),
	}
	if stats.Total > 0 {
		stats.Rate = float64(stats.Abandoned) / float64(stats.Total) * 100
	}

	log.Debug("fetched abandonment stats", "total", stats.Total, "abandoned", stats.Abandoned)
	return stats, nil
}
