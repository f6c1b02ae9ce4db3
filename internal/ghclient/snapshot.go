package ghclient

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v57/github"

	"github.com/slopguard/slopguard/internal/log"
	"github.com/slopguard/slopguard/internal/model"
)

// FetchPullRequest retrieves the PR under evaluation, including the
// author's account metadata needed by the new-account check.
func (c *Client) FetchPullRequest(ctx context.Context, owner, repo string, number int) (model.PullRequest, error) {
	pr, _, err := c.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return model.PullRequest{}, fmt.Errorf("failed to fetch PR %s/%s#%d: %w", owner, repo, number, err)
	}

	out := model.PullRequest{
		Number:       pr.GetNumber(),
		Title:        pr.GetTitle(),
		Body:         pr.GetBody(),
		Author:       pr.GetUser().GetLogin(),
		AuthorType:   pr.GetUser().GetType(),
		CreatedAt:    pr.GetCreatedAt().Time,
		Additions:    pr.GetAdditions(),
		Deletions:    pr.GetDeletions(),
		ChangedFiles: pr.GetChangedFiles(),
		HeadRef:      pr.GetHead().GetRef(),
		BaseRef:      pr.GetBase().GetRef(),
		HTMLURL:      pr.GetHTMLURL(),
	}

	// The PR payload's embedded user omits the account creation time.
	user, _, err := c.client.Users.Get(ctx, out.Author)
	if err != nil {
		return model.PullRequest{}, fmt.Errorf("failed to fetch author %s: %w", out.Author, err)
	}
	out.AuthorCreatedAt = user.GetCreatedAt().Time

	return out, nil
}

// ListChangedFiles retrieves every changed file in the PR, with patches
// where GitHub provides them.
func (c *Client) ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]model.ChangedFile, error) {
	opts := &gh.ListOptions{PerPage: 100}

	var files []model.ChangedFile
	for {
		page, resp, err := c.client.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list files for %s/%s#%d: %w", owner, repo, number, err)
		}

		for _, f := range page {
			files = append(files, model.ChangedFile{
				Filename:  f.GetFilename(),
				Status:    f.GetStatus(),
				Additions: f.GetAdditions(),
				Deletions: f.GetDeletions(),
				Changes:   f.GetChanges(),
				Patch:     f.GetPatch(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	log.Debug("fetched changed files", "count", len(files))
	return files, nil
}
