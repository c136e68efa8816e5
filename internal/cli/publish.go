package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/andyetzel/starburst-data-products-client/pkg/sep"
)

var (
	publishForce bool
	publishWait  bool
	publishPoll  time.Duration
)

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish <dataProductId>",
	Short: "Publish a data product",
	Long: `Start the publish workflow for a data product. Publishing creates the
product's views in Trino and makes the product visible to consumers.

Examples:
  sepctl publish 3ab2...
  sepctl publish 3ab2... --force --wait`,
	Args: cobra.ExactArgs(1),
	RunE: publishProduct,
}

func publishProduct(cmd *cobra.Command, args []string) error {
	id := args[0]
	ctx := cmd.Context()

	client, err := connect(ctx)
	if err != nil {
		return err
	}

	if err := client.PublishDataProduct(ctx, id, publishForce); err != nil {
		return err
	}
	if !publishWait {
		fmt.Printf("publish started for %s\n", id)
		return nil
	}

	status, err := client.AwaitPublish(ctx, id, publishPoll)
	if err != nil {
		return err
	}
	return reportWorkflow(id, status)
}

// reportWorkflow prints a terminal workflow status and turns a failed one
// into a command error.
func reportWorkflow(id string, status *sep.WorkflowStatus) error {
	if jsonOutput {
		printJSON(status)
	} else {
		fmt.Printf("%s workflow for %s finished with status %s\n", status.WorkflowType, id, status.Status)
		for _, e := range status.Errors {
			fmt.Printf("- %s %s: %s\n", e.EntityType, e.EntityName, e.Message)
		}
	}
	if status.Status != sep.WorkflowStatusCompleted {
		return fmt.Errorf("%s workflow finished with status %s", status.WorkflowType, status.Status)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().BoolVarP(&publishForce, "force", "f", false, "Republish even if already published")
	publishCmd.Flags().BoolVarP(&publishWait, "wait", "w", false, "Wait for the workflow to finish")
	publishCmd.Flags().DurationVarP(&publishPoll, "poll-interval", "", time.Second, "Workflow status poll interval")
}
