package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <resourceType> <id>",
	Short: "Get a domain or data product by id",
	Long: `Get a single resource by id. Supported resource types include:
  - domain
  - product

Examples:
  sepctl get domain 9f1c...
  sepctl get product 3ab2... --json`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"domain", "product"},
	RunE:      getResource,
}

func getResource(cmd *cobra.Command, args []string) error {
	resourceType, id := args[0], args[1]
	ctx := cmd.Context()

	client, err := connect(ctx)
	if err != nil {
		return err
	}

	switch resourceType {
	case "domain":
		domain, err := client.GetDomain(ctx, id)
		if err != nil {
			return err
		}
		printJSON(domain)
	case "product":
		dp, err := client.GetDataProduct(ctx, id)
		if err != nil {
			return err
		}
		printJSON(dp)
	default:
		return fmt.Errorf("unsupported resource type %q; use domain or product", resourceType)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(getCmd)
}
