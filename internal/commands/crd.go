package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/subschema/history"
	"github.com/reoring/subschema/internal/cliout"
	"github.com/reoring/subschema/kubecrd"
)

var (
	crdKind       string
	crdServedOnly bool
	crdLevel      string
)

var crdCmd = &cobra.Command{
	Use:   "crd",
	Short: "Work with CustomResourceDefinition schema bundles",
}

var crdListCmd = &cobra.Command{
	Use:   "list <bundle.yaml>",
	Short: "List the schema-bearing versions in a CRD bundle",
	Long: `Reads a multi-document YAML bundle and lists every CustomResourceDefinition
version carrying an openAPIV3Schema.

Example:
  subschema crd list deploy/crds.yaml
  subschema crd list deploy/crds.yaml --kind Widget`,
	Args: cobra.ExactArgs(1),
	RunE: runCRDList,
}

var crdCheckCmd = &cobra.Command{
	Use:   "check <bundle.yaml>",
	Short: "Check consecutive CRD versions against each other",
	Long: `Reads a multi-document YAML bundle, extracts each CustomResourceDefinition
version's openAPIV3Schema, and checks consecutive versions under the chosen
compatibility level.

Example:
  subschema crd check deploy/crds.yaml
  subschema crd check deploy/crds.yaml --kind Widget --served-only --level full`,
	Args: cobra.ExactArgs(1),
	RunE: runCRDCheck,
}

func init() {
	crdCmd.PersistentFlags().StringVar(&crdKind, "kind", "", "Only include the CRD with this spec.names.kind")
	crdCmd.PersistentFlags().BoolVar(&crdServedOnly, "served-only", false, "Skip versions not marked served")
	crdCheckCmd.Flags().StringVar(&crdLevel, "level", string(history.Backward), "Compatibility level: backward, forward or full")

	crdCmd.AddCommand(crdListCmd)
	crdCmd.AddCommand(crdCheckCmd)
	RootCmd.AddCommand(crdCmd)
}

func extractBundleFile(path string) ([]kubecrd.VersionedSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	schemas, diag, err := kubecrd.ExtractBundle(data, kubecrd.Options{
		Kind:       crdKind,
		ServedOnly: crdServedOnly,
	})
	if err != nil {
		return nil, err
	}
	if diag.HasWarnings() {
		for _, w := range diag.Warnings() {
			cliout.Verbose("warning: %s", w)
		}
	}
	return schemas, nil
}

func runCRDList(cmd *cobra.Command, args []string) error {
	schemas, err := extractBundleFile(args[0])
	if err != nil {
		return err
	}
	for _, vs := range schemas {
		marks := ""
		if vs.Served {
			marks += " served"
		}
		if vs.Storage {
			marks += " storage"
		}
		cliout.Info("%s %s%s (%d properties)", vs.Kind, vs.Name, marks, len(vs.Doc.Properties))
	}
	return nil
}

func runCRDCheck(cmd *cobra.Command, args []string) error {
	level, err := history.ParseLevel(crdLevel)
	if err != nil {
		return err
	}
	schemas, err := extractBundleFile(args[0])
	if err != nil {
		return err
	}
	cliout.Verbose("extracted %d versioned schemas", len(schemas))

	incompats, err := kubecrd.CompareVersions(schemas, level)
	if err != nil {
		return err
	}
	if len(incompats) == 0 {
		cliout.OK("%d versions, every step %s compatible", len(schemas), level)
		return nil
	}
	for _, inc := range incompats {
		cliout.Fail("%s %s -> %s breaks %s compatibility:", inc.Kind, inc.From, inc.To, level)
		for _, line := range inc.Errors.Strings() {
			cliout.Detail("%s", line)
		}
	}
	return fmt.Errorf("%d incompatible version pairs", len(incompats))
}
