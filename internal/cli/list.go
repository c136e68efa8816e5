package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var listSearch string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list <resourceType>",
	Short: "List domains or data products",
	Long: `List resources of a specific type. Supported resource types include:
  - domains
  - products

Examples:
  sepctl list domains
  sepctl list products
  sepctl list products --search sales`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"domains", "products"},
	RunE:      listResources,
}

func listResources(cmd *cobra.Command, args []string) error {
	resourceType := args[0]
	ctx := cmd.Context()

	client, err := connect(ctx)
	if err != nil {
		return err
	}

	switch resourceType {
	case "domains":
		domains, err := client.ListDomains(ctx)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(domains)
			return nil
		}
		fmt.Printf("%s:\n", cases.Title(language.English).String(resourceType))
		for _, d := range domains {
			fmt.Printf("- %s (%s)\n", d.Name, d.ID)
		}
	case "products":
		products, err := client.SearchDataProducts(ctx, listSearch)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(products)
			return nil
		}
		fmt.Printf("%s:\n", cases.Title(language.English).String(resourceType))
		for _, p := range products {
			fmt.Printf("- %s.%s (%s, %s)\n", p.CatalogName, p.Name, p.ID, p.Status)
		}
	default:
		return fmt.Errorf("unsupported resource type %q; use domains or products", resourceType)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Filter data products by name")
}
