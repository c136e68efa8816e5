package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tagsSet []string

// tagsCmd represents the tags command
var tagsCmd = &cobra.Command{
	Use:   "tags <dataProductId>",
	Short: "Show or replace a data product's tags",
	Long: `Show the tags attached to a data product, or replace them wholesale
with --set. Replacement removes any existing tag that is not listed.

Examples:
  sepctl tags 3ab2...
  sepctl tags 3ab2... --set finance --set quarterly`,
	Args: cobra.ExactArgs(1),
	RunE: manageTags,
}

func manageTags(cmd *cobra.Command, args []string) error {
	id := args[0]
	ctx := cmd.Context()

	client, err := connect(ctx)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("set") {
		if _, err := client.UpdateTags(ctx, id, tagsSet); err != nil {
			return err
		}
	}

	tags, err := client.GetTags(ctx, id)
	if err != nil {
		return err
	}
	if jsonOutput {
		printJSON(tags)
		return nil
	}
	fmt.Println("Tags:")
	for _, tag := range tags {
		fmt.Printf("- %s (%s)\n", tag.Value, tag.ID)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(tagsCmd)

	tagsCmd.Flags().StringArrayVarP(&tagsSet, "set", "", nil, "Replace the product's tags with the given values (repeatable)")
}
