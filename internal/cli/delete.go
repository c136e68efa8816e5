package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	deleteSkipTrino bool
	deleteWait      bool
	deletePoll      time.Duration
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <dataProductId>",
	Short: "Delete a data product",
	Long: `Start the delete workflow for a data product. The product's views are
dropped from Trino unless --skip-trino-delete is given.

Examples:
  sepctl delete 3ab2...
  sepctl delete 3ab2... --skip-trino-delete --wait`,
	Args: cobra.ExactArgs(1),
	RunE: deleteProduct,
}

func deleteProduct(cmd *cobra.Command, args []string) error {
	id := args[0]
	ctx := cmd.Context()

	client, err := connect(ctx)
	if err != nil {
		return err
	}

	if err := client.DeleteDataProduct(ctx, id, deleteSkipTrino); err != nil {
		return err
	}
	if !deleteWait {
		fmt.Printf("delete started for %s\n", id)
		return nil
	}

	status, err := client.AwaitDelete(ctx, id, deletePoll)
	if err != nil {
		return err
	}
	return reportWorkflow(id, status)
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteSkipTrino, "skip-trino-delete", "", false, "Keep the Trino views, delete only the product metadata")
	deleteCmd.Flags().BoolVarP(&deleteWait, "wait", "w", false, "Wait for the workflow to finish")
	deleteCmd.Flags().DurationVarP(&deletePoll, "poll-interval", "", time.Second, "Workflow status poll interval")
}
