package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmgilman/gitobj/internal/exec"
	"github.com/jmgilman/gitobj/internal/git"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create an empty repository",
	Long:  `Create an empty git repository at the given path, or in the working directory.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			dir, err := workingDir()
			if err != nil {
				return err
			}
			path = dir
		}

		cfg := ConfigFromContext(cmd.Context())
		repo, err := git.Init(cmd.Context(), exec.New(), path, repoOptions(cfg)...)
		if err != nil {
			return fmt.Errorf("init repository: %w", err)
		}

		fmt.Printf("Initialized empty repository in %s\n", repo.Root())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
