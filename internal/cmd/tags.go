package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags",
	Long: `List the tags of the current repository.

Each line shows the tag name, the object it points at, and the subject
of the tagged commit.`,
	Example: `  # List tags
  gitobj tags

  # Tag the current HEAD
  gitobj tags new v1.0.0

  # Tag a specific commit
  gitobj tags new v1.0.1 3f2a9b0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo(cmd)
		if err != nil {
			return err
		}

		tags, err := repo.Tags(cmd.Context())
		if err != nil {
			return fmt.Errorf("list tags: %w", err)
		}

		if len(tags) == 0 {
			fmt.Println("No tags found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, t := range tags {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name(), shortSHA(t.SHA()), t.Comment()); err != nil {
				return fmt.Errorf("write tag: %w", err)
			}
		}
		return w.Flush()
	},
}

var tagsNewCmd = &cobra.Command{
	Use:   "new <name> [target]",
	Short: "Create a tag",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo(cmd)
		if err != nil {
			return err
		}

		target := ""
		if len(args) == 2 {
			target = args[1]
		}

		tag, err := repo.CreateTag(cmd.Context(), args[0], target)
		if err != nil {
			return fmt.Errorf("create tag: %w", err)
		}

		fmt.Printf("Created tag %s at %s\n", tag.Name(), shortSHA(tag.SHA()))
		return nil
	},
}

func init() {
	tagsCmd.AddCommand(tagsNewCmd)
	rootCmd.AddCommand(tagsCmd)
}
