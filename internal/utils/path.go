package utils

import (
	"path/filepath"
	"strings"
)

// SanitiseBranch converts a branch name to a single directory name.
// Every "/" becomes "__", then every character outside [A-Za-z0-9._-]
// becomes "_". Distinct branches may map to the same name.
func SanitiseBranch(branch string) string {
	replaced := strings.ReplaceAll(branch, "/", "__")

	var sb strings.Builder
	sb.Grow(len(replaced))
	for _, r := range replaced {
		if isSafeRune(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

func isSafeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-':
		return true
	}
	return false
}

// ExtractRepoName extracts the repository name from a git URL
func ExtractRepoName(url string) string {
	if strings.HasPrefix(url, "git@") {
		url = strings.TrimPrefix(url, "git@")
		parts := strings.SplitN(url, ":", 2)
		if len(parts) == 2 {
			url = parts[1]
		}
	}

	if strings.HasPrefix(url, "https://") {
		url = strings.TrimPrefix(url, "https://")
		parts := strings.SplitN(url, "/", 4)
		if len(parts) >= 3 {
			return strings.TrimSuffix(parts[2], ".git")
		}
	}

	url = strings.TrimSuffix(url, "/")
	if i := strings.LastIndex(url, "/"); i >= 0 {
		url = url[i+1:]
	}
	return strings.TrimSuffix(url, ".git")
}

// IsGitShortFormat detects if the input is a GitHub short format (owner/repo).
// Local paths are never short format.
func IsGitShortFormat(repo string) bool {
	if filepath.IsAbs(repo) || strings.HasPrefix(repo, ".") || strings.HasPrefix(repo, "~") {
		return false
	}
	return strings.Count(repo, "/") == 1 &&
		!strings.HasPrefix(repo, "/") &&
		!strings.HasSuffix(repo, "/") &&
		!strings.Contains(repo, "@") &&
		!strings.Contains(repo, ":")
}
