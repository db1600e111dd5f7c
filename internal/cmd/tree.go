package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree [treeish]",
	Short: "List tree entries",
	Long: `List the entries of a tree object.

Without an argument the tree of HEAD is shown. Only the immediate
entries are listed; pass a subtree's name (or SHA) to descend.`,
	Example: `  # Entries at the root of HEAD
  gitobj tree

  # Entries of a subdirectory on a branch
  gitobj tree main:docs`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo(cmd)
		if err != nil {
			return err
		}

		treeish := ""
		if len(args) == 1 {
			treeish = args[0]
		}

		tree, err := repo.Tree(cmd.Context(), treeish)
		if err != nil {
			return fmt.Errorf("list tree: %w", err)
		}

		if len(tree) == 0 {
			fmt.Println("Empty tree")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, node := range tree {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", node.Mode, node.Type, shortSHA(node.SHA), node.Path); err != nil {
				return fmt.Errorf("write entry: %w", err)
			}
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
