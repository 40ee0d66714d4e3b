package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/naoray/trellis/internal/git"
)

const newBranchOption = "__new__"

// branchOptions lists local branches, then remote-only branches marked with
// an arrow, after the "create new" entry.
func branchOptions(localBranches, remoteBranches []string) []huh.Option[string] {
	options := []huh.Option[string]{
		huh.NewOption("Create new branch...", newBranchOption),
	}
	for _, b := range localBranches {
		options = append(options, huh.NewOption(b, b))
	}
	for _, b := range remoteBranches {
		options = append(options, huh.NewOption("↓ "+b, b))
	}
	return options
}

// SelectBranchInteractive asks for an existing branch or a new branch name.
func SelectBranchInteractive(localBranches, remoteBranches []string) (string, error) {
	var selected string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select a branch").
				Description("Choose an existing branch or create a new one").
				Options(branchOptions(localBranches, remoteBranches)...).
				Value(&selected),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return "", NormalizeAbort(err)
	}

	if selected == newBranchOption {
		return PromptNewBranch()
	}

	return selected, nil
}

func PromptNewBranch() (string, error) {
	var name string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New branch name").
				Placeholder("feature/my-feature").
				Value(&name).
				Validate(validateBranchName),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return "", NormalizeAbort(err)
	}

	return strings.TrimSpace(name), nil
}

func validateBranchName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("branch name cannot be empty")
	}
	if len(s) < 2 {
		return fmt.Errorf("branch name must be at least 2 characters")
	}
	if strings.ContainsAny(s, " ~^:?*[\\") || strings.Contains(s, "..") {
		return fmt.Errorf("branch name contains characters git does not allow")
	}
	return nil
}

// SelectWorktreeToRemove picks one of the given worktrees.
func SelectWorktreeToRemove(worktrees []git.Worktree) (*git.Worktree, error) {
	if len(worktrees) == 0 {
		return nil, fmt.Errorf("no worktrees available to remove")
	}

	options := make([]huh.Option[string], len(worktrees))
	for i, wt := range worktrees {
		label := fmt.Sprintf("%s (%s)", wt.Branch, filepath.Base(wt.Path))
		options[i] = huh.NewOption(label, wt.Path)
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select worktree to remove").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return nil, NormalizeAbort(err)
	}

	for _, wt := range worktrees {
		if wt.Path == selected {
			return &wt, nil
		}
	}

	return nil, fmt.Errorf("worktree not found")
}

func Confirm(message string) (bool, error) {
	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(message).
				Value(&confirmed),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return false, NormalizeAbort(err)
	}

	return confirmed, nil
}
