package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Show the resolved connection configuration",
	Long: `Show the connection configuration resolved from the environment, with
secrets redacted. No network connection is made.`,
	Args: cobra.NoArgs,
	RunE: describeConfig,
}

func describeConfig(cmd *cobra.Command, args []string) error {
	bundle, err := resolveBundle()
	if err != nil {
		return err
	}

	info := bundle.Describe()
	if jsonOutput {
		printJSON(info)
		return nil
	}
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s: %s\n", k, info[k])
	}
	return nil
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
