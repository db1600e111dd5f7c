package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [path...]",
	Short: "Stage changes",
	Long: `Stage the given paths for the next commit.

Without arguments all changes in the working tree are staged,
including deletions and untracked files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo(cmd)
		if err != nil {
			return err
		}

		if err := repo.Stage(cmd.Context(), args...); err != nil {
			return fmt.Errorf("stage changes: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
