package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show working tree status",
	Long: `Show the working tree status in short form.

Each line carries the two porcelain status letters followed by the
path, matching the output of git status --porcelain.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo(cmd)
		if err != nil {
			return err
		}

		entries, err := repo.Status(cmd.Context())
		if err != nil {
			return fmt.Errorf("read status: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("Working tree clean")
			return nil
		}

		for _, e := range entries {
			if e.From != "" {
				fmt.Printf("%c%c %s -> %s\n", e.Index, e.Worktree, e.From, e.Path)
				continue
			}
			fmt.Printf("%c%c %s\n", e.Index, e.Worktree, e.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
