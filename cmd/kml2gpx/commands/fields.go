package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"kml2gpx/internal/service"
)

// NewFieldsCmd lists the attribute fields a document declares.
func NewFieldsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the fields declared in a KML document's schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inName, _ := cmd.Flags().GetString("in")
			in, err := openInput(cmd, inName)
			if err != nil {
				return err
			}
			defer in.Close()

			names, err := service.DeclaredFields(in)
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
	cmd.Flags().StringP("in", "i", "", "input KML file (default stdin)")
	return cmd
}
