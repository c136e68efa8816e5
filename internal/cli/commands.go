package cli

import (
	"context"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/andyetzel/starburst-data-products-client/pkg/authconfig"
	"github.com/andyetzel/starburst-data-products-client/pkg/sep"
)

var (
	// Global flags
	jsonOutput bool
	envFile    string
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sepctl",
	Short: "sepctl is a command line interface for Starburst Enterprise data products",
	Long: `sepctl is a command line interface for managing Starburst Enterprise data products.
It can list and inspect domains and data products, manage tags, and drive the
publish and delete workflows.

Connection and credentials are read from the environment (SEP_HOST, AUTH_METHOD
and the method-specific variables), optionally seeded from a dotenv file via
--env-file.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "", "", "Path to a dotenv file with connection settings")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")

	rootCmd.AddCommand(newVersionCmd())
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	rootCmd.SilenceErrors = true // Prevent Cobra from printing the error
	rootCmd.SilenceUsage = true  // Prevent Cobra from printing usage on error

	err := rootCmd.Execute()
	if err != nil {
		if jsonOutput {
			printJSON(map[string]string{"error": err.Error()})
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// resolveBundle loads and validates the environment configuration without
// touching the network.
func resolveBundle() (*authconfig.CredentialBundle, error) {
	settings, err := authconfig.Load(envFile)
	if err != nil {
		return nil, err
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	return settings.Resolve(authconfig.WithLogger(logger))
}

// connect builds an authenticated client. Interactive methods may open a
// browser or prompt here.
func connect(ctx context.Context) (*sep.Client, error) {
	bundle, err := resolveBundle()
	if err != nil {
		return nil, err
	}
	return bundle.Connect(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of sepctl",
		Run: func(cmd *cobra.Command, args []string) {
			if jsonOutput {
				printJSON(map[string]string{"version": "v0.1.0"})
			} else {
				cmd.Println("sepctl v0.1.0")
			}
		},
	}
}

// printJSON prints the given value as indented JSON to stdout
func printJSON(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(jsonData))
}
