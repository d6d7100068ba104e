package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	subschema "github.com/reoring/subschema"
	"github.com/reoring/subschema/internal/cliout"
)

var resolveOut string

var resolveCmd = &cobra.Command{
	Use:   "resolve <schema.json>",
	Short: "Inline all references and print the self-contained schema",
	Long: `Loads a schema document, inlines its $defs references and allOf aliases, and
prints the resulting self-contained shape in canonical form.

Example:
  subschema resolve schemas/v1.json
  subschema resolve schemas/v1.json -o resolved.json`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveOut, "out", "o", "", "Write the resolved schema to a file instead of stdout")

	RootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	doc, err := subschema.LoadDocument(args[0])
	if err != nil {
		return err
	}
	cliout.Verbose("resolving %s (%d definitions)", args[0], len(doc.Definitions))
	obj, err := subschema.Resolve(doc)
	if err != nil {
		return err
	}
	data, err := subschema.EncodeValue(obj)
	if err != nil {
		return err
	}
	if resolveOut == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(resolveOut, data, 0o644); err != nil {
		return err
	}
	cliout.OK("wrote %s", resolveOut)
	return nil
}
