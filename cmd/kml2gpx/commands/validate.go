package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"kml2gpx/internal/schema"
)

// NewValidateCmd checks KML files against XML schemas without converting
// them.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate KML files against XSD schemas",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runValidate,
	}
	cmd.Flags().StringSlice("schema", nil, "XSD to validate against (repeatable)")
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if len(cfg.Schemas) == 0 {
		return errors.New("no schemas configured: pass --schema or set schemas in the config file")
	}
	v, err := schema.Load(cfg.Schemas...)
	if err != nil {
		return err
	}

	invalid := 0
	for _, name := range args {
		data, err := os.ReadFile(name)
		if err != nil {
			return errors.Wrap(err, "read input")
		}
		for _, rep := range v.Validate(data) {
			if !printReport(cmd.OutOrStdout(), name, rep) {
				invalid++
			}
		}
	}
	if invalid > 0 {
		return errors.Newf("%d validation(s) failed", invalid)
	}
	return nil
}

func printReport(w io.Writer, file string, rep schema.Report) bool {
	switch {
	case rep.Err != nil:
		fmt.Fprintf(w, "%s: %s: error: %v\n", file, rep.Schema, rep.Err)
		return false
	case rep.Valid:
		fmt.Fprintf(w, "%s: %s: valid\n", file, rep.Schema)
		return true
	}
	fmt.Fprintf(w, "%s: %s: %d violation(s)\n", file, rep.Schema, rep.Total)
	for _, v := range rep.Violations {
		fmt.Fprintf(w, "  %s\n", v)
	}
	if more := rep.Total - len(rep.Violations); more > 0 {
		fmt.Fprintf(w, "  ... and %d more\n", more)
	}
	return false
}
