package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log [range]",
	Short: "Show commit history",
	Long: `Show the commit history of the current repository, newest first.

An optional range argument restricts the listing, using the same
revision range syntax git itself accepts (for example main..feature).`,
	Example: `  # Last 20 commits of the current branch
  gitobj log

  # Commits on feature that are not on main
  gitobj log main..feature

  # The five most recent commits
  gitobj log -n 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return fmt.Errorf("get limit flag: %w", err)
		}

		repo, err := openRepo(cmd)
		if err != nil {
			return err
		}

		rangeSpec := ""
		if len(args) == 1 {
			rangeSpec = args[0]
		}

		commits, err := repo.Log(cmd.Context(), rangeSpec, limit)
		if err != nil {
			return fmt.Errorf("read log: %w", err)
		}

		if len(commits) == 0 {
			fmt.Println("No commits found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, c := range commits {
			subject, _, _ := strings.Cut(c.Message(), "\n")
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", shortSHA(c.SHA()), c.Author(), subject); err != nil {
				return fmt.Errorf("write commit: %w", err)
			}
		}
		return w.Flush()
	},
}

func init() {
	logCmd.Flags().IntP("limit", "n", 20, "maximum number of commits to show")
	rootCmd.AddCommand(logCmd)
}
