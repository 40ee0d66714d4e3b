package git

import (
	"context"
	"strings"
)

// FetchRefspec maps remote branches to remote-tracking refs. A bare clone
// does not configure it, so remote-tracking branches would never appear.
const FetchRefspec = "+refs/heads/*:refs/remotes/origin/*"

// CloneBare clones remote into dest as a bare repository.
func (c *Client) CloneBare(ctx context.Context, remote, dest string) error {
	_, err := c.run(ctx, "", "clone", "--bare", remote, dest)
	return wrap("git clone --bare", err)
}

// CloneBareWithGH clones a GitHub owner/repo through the gh CLI.
func (c *Client) CloneBareWithGH(ctx context.Context, repo, dest string) error {
	_, err := c.executor.Output(ctx, "", "gh", "repo", "clone", repo, dest, "--", "--bare")
	return wrap("gh repo clone", err)
}

// ConfigureFetchRefspec sets the origin fetch refspec in the bare repo.
// This is idempotent - safe to call multiple times.
func (c *Client) ConfigureFetchRefspec(ctx context.Context, gitDir string) error {
	_, err := c.run(ctx, gitDir, "config", "remote.origin.fetch", FetchRefspec)
	return wrap("setting fetch refspec", err)
}

// HasFetchRefspec checks if a fetch refspec is already configured.
func (c *Client) HasFetchRefspec(ctx context.Context, gitDir string) bool {
	out, err := c.run(ctx, gitDir, "config", "--get", "remote.origin.fetch")
	return err == nil && strings.TrimSpace(out) != ""
}

// GetRemoteURL returns the origin URL, or "" when none is configured.
func (c *Client) GetRemoteURL(ctx context.Context, gitDir string) string {
	out, err := c.run(ctx, gitDir, "config", "--get", "remote.origin.url")
	if err != nil {
		return ""
	}
	return out
}

// Fetch fetches all remotes and prunes deleted remote branches.
func (c *Client) Fetch(ctx context.Context, gitDir string) error {
	_, err := c.run(ctx, gitDir, "fetch", "--all", "--prune")
	return wrap("git fetch", err)
}
