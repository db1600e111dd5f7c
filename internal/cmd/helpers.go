package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmgilman/gitobj/internal/config"
	"github.com/jmgilman/gitobj/internal/exec"
	"github.com/jmgilman/gitobj/internal/git"
)

// repoOptions maps the loaded config onto repository options.
func repoOptions(cfg *config.Config) []git.Option {
	if cfg == nil {
		return nil
	}
	return []git.Option{
		git.WithBinary(cfg.Git.Binary),
		git.WithTimeout(cfg.Git.Timeout()),
	}
}

// openRepo opens the repository containing the working directory.
func openRepo(cmd *cobra.Command) (*git.Repository, error) {
	dir, err := workingDir()
	if err != nil {
		return nil, err
	}

	cfg := ConfigFromContext(cmd.Context())
	repo, err := git.Open(cmd.Context(), exec.New(), dir, repoOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	return repo, nil
}

// shortSHA abbreviates a full object name for display.
func shortSHA(sha string) string {
	if len(sha) <= 8 {
		return sha
	}
	return sha[:8]
}
