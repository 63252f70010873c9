// Package commands holds the kml2gpx subcommands.
package commands

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"kml2gpx/internal/config"
	"kml2gpx/internal/logging"
)

// AddGlobalFlags registers the flags every subcommand understands.
func AddGlobalFlags(root *cobra.Command) {
	f := root.PersistentFlags()
	f.String("config", "", "config file (default: kml2gpx.yaml in . or ./configs)")
	f.StringP("profile", "p", "", "input dialect: "+profileList())
	f.String("log-level", "", "log level: debug, info, warn or error")
	f.Bool("log-json", false, "log as JSON")
	f.BoolP("quiet", "q", false, "only log warnings and errors, no progress bar")
}

// InitLogging sets up the global logger from the config file and flags.
func InitLogging(cmd *cobra.Command) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if err := logging.Initialize(cfg.Log.Level, cfg.Log.JSON); err != nil {
		return errors.Wrap(err, "initialize logger")
	}
	return nil
}

// loadSettings reads the configuration and applies the command line on top.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if p, _ := cmd.Flags().GetString("profile"); p != "" {
		cfg.Profile = p
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if cmd.Flags().Changed("log-json") {
		cfg.Log.JSON, _ = cmd.Flags().GetBool("log-json")
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		cfg.Log.Level = "warn"
	}
	if f := cmd.Flags().Lookup("discover-fields"); f != nil && f.Changed {
		cfg.Conversion.DiscoverFields, _ = cmd.Flags().GetBool("discover-fields")
	}
	if f := cmd.Flags().Lookup("schema"); f != nil && f.Changed {
		cfg.Schemas, _ = cmd.Flags().GetStringSlice("schema")
	}
	return cfg, nil
}

func profileList() string {
	return strings.Join(config.ProfileNames(), ", ")
}
