package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LinkagePrefix starts the .git file of every linked worktree.
const LinkagePrefix = "gitdir:"

// ReadLinkage returns the gitdir a worktree's .git file points to.
// It fails when .git is missing, is a directory, or lacks the gitdir prefix.
func ReadLinkage(worktreePath string) (string, error) {
	gitPath := filepath.Join(worktreePath, ".git")

	info, err := os.Lstat(gitPath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", gitPath, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory, not a worktree linkage file", gitPath)
	}

	content, err := os.ReadFile(gitPath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", gitPath, err)
	}

	line := strings.TrimSpace(string(content))
	if !strings.HasPrefix(line, LinkagePrefix) {
		return "", fmt.Errorf("%s does not start with %q", gitPath, LinkagePrefix)
	}

	gitDir := strings.TrimSpace(strings.TrimPrefix(line, LinkagePrefix))
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(worktreePath, gitDir)
	}
	return filepath.Clean(gitDir), nil
}

// LinksToBare reports whether the worktree's linkage file references a path
// containing the bare repository's directory name.
func LinksToBare(worktreePath, barePath string) bool {
	gitDir, err := ReadLinkage(worktreePath)
	if err != nil {
		return false
	}

	bareName := filepath.Base(filepath.Clean(barePath))
	for _, part := range strings.Split(filepath.ToSlash(gitDir), "/") {
		if part == bareName {
			return true
		}
	}
	return false
}
