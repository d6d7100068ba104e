package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	subschema "github.com/reoring/subschema"
	"github.com/reoring/subschema/history"
	"github.com/reoring/subschema/internal/cliout"
)

var (
	versionsDir   string
	versionsLevel string
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Record and verify schema version history",
}

var versionsRecordCmd = &cobra.Command{
	Use:   "record <schema.json>",
	Short: "Append the schema to the version directory when its shape changed",
	Long: `Resolves the schema and compares its fingerprint against the latest recorded
version. A new numbered file (0001.json, 0002.json, ...) is written only when
the resolved shape differs.

Example:
  subschema versions record user.json --dir schemas/User`,
	Args: cobra.ExactArgs(1),
	RunE: runVersionsRecord,
}

var versionsVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check every consecutive version pair for compatibility",
	Long: `Walks the version directory in order and checks each consecutive pair under
the chosen compatibility level.

Example:
  subschema versions verify --dir schemas/User
  subschema versions verify --dir schemas/User --level full`,
	Args: cobra.NoArgs,
	RunE: runVersionsVerify,
}

func init() {
	versionsCmd.PersistentFlags().StringVar(&versionsDir, "dir", "", "Version directory (required)")
	versionsCmd.MarkPersistentFlagRequired("dir")
	versionsVerifyCmd.Flags().StringVar(&versionsLevel, "level", string(history.Backward), "Compatibility level: backward, forward or full")

	versionsCmd.AddCommand(versionsRecordCmd)
	versionsCmd.AddCommand(versionsVerifyCmd)
	RootCmd.AddCommand(versionsCmd)
}

func runVersionsRecord(cmd *cobra.Command, args []string) error {
	doc, err := subschema.LoadDocument(args[0])
	if err != nil {
		return err
	}
	st := history.NewDirStore(versionsDir)
	ver, written, err := history.Record(st, doc)
	if err != nil {
		return err
	}
	if written {
		cliout.OK("recorded version %d (%s)", ver, history.VersionFilename(ver))
	} else {
		cliout.Info("shape unchanged since version %d, nothing recorded", ver)
	}
	return nil
}

func runVersionsVerify(cmd *cobra.Command, args []string) error {
	level, err := history.ParseLevel(versionsLevel)
	if err != nil {
		return err
	}
	st := history.NewDirStore(versionsDir)
	versions, err := st.Versions()
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		cliout.Info("no versions recorded in %s", versionsDir)
		return nil
	}
	breaks, err := history.Verify(st, level)
	if err != nil {
		return err
	}
	if len(breaks) == 0 {
		cliout.OK("%d versions, every step %s compatible", len(versions), level)
		return nil
	}
	for _, br := range breaks {
		cliout.Fail("version %d -> %d breaks %s compatibility:", br.From, br.To, level)
		for _, line := range br.Errors.Strings() {
			cliout.Detail("%s", line)
		}
	}
	return fmt.Errorf("%d incompatible version pairs", len(breaks))
}
