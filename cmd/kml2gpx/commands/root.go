package commands

import (
	"github.com/spf13/cobra"

	"kml2gpx/internal/env"
)

// NewRootCmd assembles the kml2gpx command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kml2gpx",
		Short: "Convert KML placemarks into GPX waypoints",
		Long: `kml2gpx extracts point placemarks from KML exports (USFS recreation
areas, BLM facilities), repairs swapped coordinates, checks them against the
expected area and writes a GPX 1.1 waypoint document.

Examples:
  kml2gpx convert < recareas.kml > recareas.gpx
  kml2gpx convert --profile blm --in facilities.kml --out facilities.gpx
  kml2gpx fields --in recareas.kml
  kml2gpx validate --schema ogckml22.xsd recareas.kml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			env.LoadEnv()
			return InitLogging(cmd)
		},
	}
	AddGlobalFlags(root)
	root.AddCommand(NewConvertCmd(), NewFieldsCmd(), NewValidateCmd(), NewProfilesCmd())
	return root
}
