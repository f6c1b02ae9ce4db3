package ghclient

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v57/github"

	"github.com/slopguard/slopguard/internal/log"
)

// AddLabel applies a label to the PR, replacing any previous slopguard
// label so verdicts don't accumulate.
func (c *Client) AddLabel(ctx context.Context, owner, repo string, number int, label string, stale []string) error {
	for _, old := range stale {
		if old == label {
			continue
		}
		// Removing a label that isn't present returns 404; ignore it.
		if _, err := c.client.Issues.RemoveLabelForIssue(ctx, owner, repo, number, old); err != nil {
			log.Trace("label not removed", "label", old, "error", err)
		}
	}

	_, _, err := c.client.Issues.AddLabelsToIssue(ctx, owner, repo, number, []string{label})
	if err != nil {
		return fmt.Errorf("failed to add label %q: %w", label, err)
	}
	return nil
}

// PostComment posts an informational comment on the PR.
func (c *Client) PostComment(ctx context.Context, owner, repo string, number int, body string) error {
	comment := &gh.IssueComment{Body: gh.String(body)}
	_, _, err := c.client.Issues.CreateComment(ctx, owner, repo, number, comment)
	if err != nil {
		return fmt.Errorf("failed to post comment: %w", err)
	}
	return nil
}

// RequestChanges posts a request-changes review with the given body.
func (c *Client) RequestChanges(ctx context.Context, owner, repo string, number int, body string) error {
	review := &gh.PullRequestReviewRequest{
		Body:  gh.String(body),
		Event: gh.String("REQUEST_CHANGES"),
	}
	_, _, err := c.client.PullRequests.CreateReview(ctx, owner, repo, number, review)
	if err != nil {
		return fmt.Errorf("failed to request changes: %w", err)
	}
	return nil
}

// ClosePR closes the pull request without merging.
func (c *Client) ClosePR(ctx context.Context, owner, repo string, number int) error {
	req := &gh.IssueRequest{State: gh.String("closed")}
	_, _, err := c.client.Issues.Edit(ctx, owner, repo, number, req)
	if err != nil {
		return fmt.Errorf("failed to close PR: %w", err)
	}
	return nil
}
