package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmgilman/gitobj/internal/git"
	"github.com/jmgilman/gitobj/internal/prompt"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout <branch>",
	Short: "Switch branches",
	Long: `Switch the working tree to the named branch.

When the branch does not exist, gitobj offers to create it from the
current HEAD. Pass --create to skip the prompt.`,
	Example: `  # Switch to an existing branch
  gitobj checkout main

  # Create and switch in one step
  gitobj checkout -c feature`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		create, err := cmd.Flags().GetBool("create")
		if err != nil {
			return fmt.Errorf("get create flag: %w", err)
		}

		repo, err := openRepo(cmd)
		if err != nil {
			return err
		}

		name := args[0]
		branch, err := repo.Checkout(cmd.Context(), name, create)
		if errors.Is(err, git.ErrBranchNotFound) && !create {
			prompter := prompt.New()
			ok, confirmErr := prompter.Confirm(
				fmt.Sprintf("Branch %q does not exist", name),
				"Create it from the current HEAD?",
			)
			if confirmErr != nil {
				return confirmErr
			}
			if !ok {
				return err
			}
			branch, err = repo.Checkout(cmd.Context(), name, true)
		}
		if err != nil {
			return fmt.Errorf("checkout: %w", err)
		}

		fmt.Printf("Switched to branch %s at %s\n", branch.Name(), shortSHA(branch.SHA()))
		return nil
	},
}

func init() {
	checkoutCmd.Flags().BoolP("create", "c", false, "create the branch if it does not exist")
	rootCmd.AddCommand(checkoutCmd)
}
