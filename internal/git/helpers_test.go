package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func runTestGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
	return string(output)
}

// createSourceRepo creates a regular repository on branch main with one
// commit, to be used as the clone remote.
func createSourceRepo(t *testing.T) string {
	t.Helper()
	requireGit(t)

	repoDir := filepath.Join(t.TempDir(), "source")
	require.NoError(t, os.MkdirAll(repoDir, 0755))

	runTestGit(t, repoDir, "init")
	runTestGit(t, repoDir, "checkout", "-b", "main")
	runTestGit(t, repoDir, "config", "user.email", "test@example.com")
	runTestGit(t, repoDir, "config", "user.name", "Test User")
	require.NoError(t, os.WriteFile(filepath.Join(repoDir, "README.md"), []byte("test"), 0644))
	runTestGit(t, repoDir, "add", ".")
	runTestGit(t, repoDir, "commit", "-m", "Initial commit")

	return repoDir
}

// createBareClone clones source into <tmp>/meta/.bare and returns the meta
// root and bare path.
func createBareClone(t *testing.T, c *Client, source string) (string, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "meta")
	require.NoError(t, os.MkdirAll(root, 0755))
	barePath := filepath.Join(root, ".bare")

	require.NoError(t, c.CloneBare(t.Context(), source, barePath))
	require.NoError(t, c.ConfigureFetchRefspec(t.Context(), barePath))
	return root, barePath
}
