package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/subschema/internal/cliout"
)

const version = "0.1.0"

var verbose bool

// RootCmd is the root command for the subschema CLI.
var RootCmd = &cobra.Command{
	Use:   "subschema",
	Short: "Check JSON Schema shapes for structural compatibility",
	Long: `subschema decides whether every value permitted by one JSON Schema shape is
also permitted by another, and reports each point where that fails.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cliout.SetVerbose(verbose)
	},
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show resolution and comparison details")

	RootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("subschema v%s\n", version)
		},
	})
}
