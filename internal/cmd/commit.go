package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmgilman/gitobj/internal/git"
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Record staged changes",
	Long:  `Record the staged changes as a new commit with the given message.`,
	Example: `  # Commit staged changes
  gitobj commit -m "fix parser"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		message, err := cmd.Flags().GetString("message")
		if err != nil {
			return fmt.Errorf("get message flag: %w", err)
		}

		repo, err := openRepo(cmd)
		if err != nil {
			return err
		}

		commit, err := repo.Commit(cmd.Context(), message)
		if err != nil {
			if errors.Is(err, git.ErrNothingToCommit) {
				fmt.Println("Nothing to commit")
				return nil
			}
			return fmt.Errorf("commit: %w", err)
		}

		fmt.Printf("Committed %s\n", shortSHA(commit.SHA()))
		return nil
	},
}

func init() {
	commitCmd.Flags().StringP("message", "m", "", "commit message")
	_ = commitCmd.MarkFlagRequired("message")
	rootCmd.AddCommand(commitCmd)
}
