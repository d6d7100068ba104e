package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	subschema "github.com/reoring/subschema"
	"github.com/reoring/subschema/internal/cliout"
)

var checkBothWays bool

var checkCmd = &cobra.Command{
	Use:   "check <a.json> <b.json>",
	Short: "Report where schema a is not a subset of schema b",
	Long: `Loads and resolves both schema files, then reports every point where a value
permitted by a would be rejected under b.

Example:
  subschema check schemas/v1.json schemas/v2.json
  subschema check --both old.json new.json`,
	Args: cobra.ExactArgs(2),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkBothWays, "both", false, "Also check the reverse direction")

	RootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := subschema.Load(args[0])
	if err != nil {
		return err
	}
	b, err := subschema.Load(args[1])
	if err != nil {
		return err
	}

	total := reportDirection(args[0], args[1], subschema.Subset(a, b))
	if checkBothWays {
		total += reportDirection(args[1], args[0], subschema.Subset(b, a))
	}
	if total > 0 {
		return fmt.Errorf("%d incompatibilities", total)
	}
	return nil
}

func reportDirection(from, to string, errs subschema.Errors) int {
	if len(errs) == 0 {
		cliout.OK("%s fits within %s", from, to)
		return 0
	}
	cliout.Fail("%s does not fit within %s:", from, to)
	for _, line := range errs.Strings() {
		cliout.Detail("%s", line)
	}
	return len(errs)
}
