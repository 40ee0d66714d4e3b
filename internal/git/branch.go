package git

import (
	"context"
	"strings"
)

// DefaultRemote is the remote every bare clone is created with.
const DefaultRemote = "origin"

// LocalBranchExists reports whether refs/heads/<branch> exists.
func (c *Client) LocalBranchExists(ctx context.Context, gitDir, branch string) bool {
	return c.succeeds(ctx, gitDir, "show-ref", "--verify", "--quiet", "refs/heads/"+branch)
}

// RemoteBranchExists reports whether refs/remotes/origin/<branch> exists.
func (c *Client) RemoteBranchExists(ctx context.Context, gitDir, branch string) bool {
	return c.succeeds(ctx, gitDir, "show-ref", "--verify", "--quiet", "refs/remotes/"+DefaultRemote+"/"+branch)
}

// CreateTrackingBranch creates a local branch tracking origin/<branch>.
func (c *Client) CreateTrackingBranch(ctx context.Context, gitDir, branch string) error {
	_, err := c.run(ctx, gitDir, "branch", "--track", branch, DefaultRemote+"/"+branch)
	return wrap("creating tracking branch", err)
}

// GetBranchRefs returns all local and remote branch names.
// Local branches are returned as-is (e.g., "main", "feature/foo").
// Remote branches have the remote prefix stripped and exclude those that
// also exist locally.
func (c *Client) GetBranchRefs(ctx context.Context, gitDir string) (local []string, remote []string, err error) {
	out, err := c.run(ctx, gitDir, "for-each-ref", "--format=%(refname:short)", "refs/heads/")
	if err != nil {
		return nil, nil, wrap("listing local branches", err)
	}
	local = splitLines(out)

	seen := make(map[string]bool, len(local))
	for _, b := range local {
		seen[b] = true
	}

	out, err = c.run(ctx, gitDir, "for-each-ref", "--format=%(refname:short)", "refs/remotes/"+DefaultRemote+"/")
	if err != nil {
		return nil, nil, wrap("listing remote branches", err)
	}
	for _, line := range splitLines(out) {
		name := strings.TrimPrefix(line, DefaultRemote+"/")
		if name == "HEAD" || name == DefaultRemote || seen[name] {
			continue
		}
		remote = append(remote, name)
	}

	return local, remote, nil
}
