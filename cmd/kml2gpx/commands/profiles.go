package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"kml2gpx/internal/config"
)

// NewProfilesCmd prints the built-in input dialects.
func NewProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the built-in input profiles",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range config.ProfileNames() {
				p, _ := config.Profile(name)
				marker := " "
				if name == config.DefaultProfile {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-10s name=%s id=%s fields=%d\n",
					marker, name, p.NameField, p.IdentifierField, len(p.FieldMapping))
			}
		},
	}
}
