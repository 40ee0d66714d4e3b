package git

import (
	"context"
	"strings"
)

// Worktree represents a git worktree
type Worktree struct {
	Path   string
	Branch string
	HEAD   string
	IsBare bool
}

// AddWorktree checks out an existing branch into worktreePath.
func (c *Client) AddWorktree(ctx context.Context, gitDir, worktreePath, branch string) error {
	_, err := c.run(ctx, gitDir, "worktree", "add", worktreePath, branch)
	return wrap("git worktree add", err)
}

// AddWorktreeNewBranch creates branch and checks it out into worktreePath.
// An empty base starts the branch at the repository HEAD.
func (c *Client) AddWorktreeNewBranch(ctx context.Context, gitDir, worktreePath, branch, base string) error {
	args := []string{"worktree", "add", "-b", branch, worktreePath}
	if base != "" {
		args = append(args, base)
	}
	_, err := c.run(ctx, gitDir, args...)
	return wrap("git worktree add -b", err)
}

// RemoveWorktree removes a worktree using a specific git directory
func (c *Client) RemoveWorktree(ctx context.Context, gitDir, worktreePath string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, worktreePath)

	_, err := c.run(ctx, gitDir, args...)
	return wrap("git worktree remove", err)
}

// ListWorktrees lists all worktrees for a git repository, including the
// bare repository entry itself.
func (c *Client) ListWorktrees(ctx context.Context, gitDir string) ([]Worktree, error) {
	out, err := c.run(ctx, gitDir, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, wrap("git worktree list", err)
	}
	return parsePorcelain(out), nil
}

// IsInsideWorkTree reports whether path is inside a git working tree.
func (c *Client) IsInsideWorkTree(ctx context.Context, path string) bool {
	out, err := c.run(ctx, path, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// parsePorcelain parses `git worktree list --porcelain`. Blocks are
// separated by blank lines; "bare" and "detached" are bare keywords.
func parsePorcelain(output string) []Worktree {
	var worktrees []Worktree
	var current *Worktree

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			if current != nil {
				worktrees = append(worktrees, *current)
				current = nil
			}
			continue
		}

		key, value, _ := strings.Cut(line, " ")
		switch key {
		case "worktree":
			if current != nil {
				worktrees = append(worktrees, *current)
			}
			current = &Worktree{Path: value}
		case "HEAD":
			if current != nil {
				current.HEAD = value
			}
		case "branch":
			if current != nil {
				current.Branch = strings.TrimPrefix(value, "refs/heads/")
			}
		case "bare":
			if current != nil {
				current.IsBare = true
			}
		}
	}

	if current != nil {
		worktrees = append(worktrees, *current)
	}
	return worktrees
}
