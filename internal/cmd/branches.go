package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var branchesCmd = &cobra.Command{
	Use:   "branches",
	Short: "List branches",
	Long: `List the local branches of the current repository.

The current branch is marked with an asterisk. Each line shows the
branch name, the commit it points at, and that commit's subject.`,
	Example: `  # List branches
  gitobj branches

  # Create a branch from the current HEAD
  gitobj branches new feature

  # Create a branch from a specific start point
  gitobj branches new hotfix v1.2.0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo(cmd)
		if err != nil {
			return err
		}

		branches, err := repo.Branches(cmd.Context())
		if err != nil {
			return fmt.Errorf("list branches: %w", err)
		}

		if len(branches) == 0 {
			fmt.Println("No branches found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, b := range branches {
			marker := " "
			if b.Current() {
				marker = "*"
			}
			if _, err := fmt.Fprintf(w, "%s %s\t%s\t%s\n", marker, b.Name(), shortSHA(b.SHA()), b.Comment()); err != nil {
				return fmt.Errorf("write branch: %w", err)
			}
		}
		return w.Flush()
	},
}

var branchesNewCmd = &cobra.Command{
	Use:   "new <name> [start-point]",
	Short: "Create a branch",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo(cmd)
		if err != nil {
			return err
		}

		startPoint := ""
		if len(args) == 2 {
			startPoint = args[1]
		}

		branch, err := repo.CreateBranch(cmd.Context(), args[0], startPoint)
		if err != nil {
			return fmt.Errorf("create branch: %w", err)
		}

		fmt.Printf("Created branch %s at %s\n", branch.Name(), shortSHA(branch.SHA()))
		return nil
	},
}

func init() {
	branchesCmd.AddCommand(branchesNewCmd)
	rootCmd.AddCommand(branchesCmd)
}
