package ghclient

import (
	"context"
	"net/http"

	gh "github.com/google/go-github/v57/github"

	"github.com/slopguard/slopguard/internal/deps"
	"github.com/slopguard/slopguard/internal/log"
)

// manifestParsers maps each recognized manifest file to its parser.
var manifestParsers = map[string]func(string) map[string]bool{
	"package.json":     deps.ParsePackageJSON,
	"requirements.txt": deps.ParseRequirementsTxt,
	"Cargo.toml":       deps.ParseCargoToml,
}

// ProjectDependencies assembles the declared dependency set from
// whichever manifests exist on the given ref. Missing files contribute
// nothing; a fetch failure other than 404 aborts.
func (c *Client) ProjectDependencies(ctx context.Context, owner, repo, ref string) (map[string]bool, error) {
	out := make(map[string]bool)

	for path, parse := range manifestParsers {
		content, err := c.fetchFileContent(ctx, owner, repo, path, ref)
		if err != nil {
			return nil, err
		}
		if content == "" {
			continue
		}

		parsed := parse(content)
		log.Debug("parsed manifest", "path", path, "deps", len(parsed))
		for name := range parsed {
			out[name] = true
		}
	}

	return out, nil
}

// fetchFileContent returns the decoded content of a repo file, or the
// empty string if the file does not exist on the ref.
func (c *Client) fetchFileContent(ctx context.Context, owner, repo, path, ref string) (string, error) {
	opts := &gh.RepositoryContentGetOptions{Ref: ref}

	file, _, resp, err := c.client.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", err
	}
	if file == nil {
		return "", nil
	}

	content, err := file.GetContent()
	if err != nil {
		// Undecodable content (e.g. unexpected encoding) is treated the
		// same as a missing manifest.
		log.Warn("could not decode manifest", "path", path, "error", err)
		return "", nil
	}
	return content, nil
}
