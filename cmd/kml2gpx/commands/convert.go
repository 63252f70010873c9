package commands

import (
	"bytes"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"kml2gpx/internal/config"
	"kml2gpx/internal/convert"
	"kml2gpx/internal/logging"
	"kml2gpx/internal/progress"
	"kml2gpx/internal/schema"
	"kml2gpx/internal/service"
)

// NewConvertCmd converts one KML document into GPX.
func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert KML placemarks to GPX waypoints",
		Long: `Read a KML document (stdin by default), turn every point placemark into a
waypoint and write GPX 1.1 (stdout by default). Diagnostics go to stderr.

An input without placemarks still writes an empty GPX document but exits
with a non-zero status.`,
		Args: cobra.NoArgs,
		RunE: runConvert,
	}
	cmd.Flags().StringP("in", "i", "", "input KML file (default stdin)")
	cmd.Flags().StringP("out", "o", "", "output GPX file (default stdout)")
	cmd.Flags().Bool("discover-fields", false, "describe every field declared in the document schema")
	cmd.Flags().StringSlice("schema", nil, "XSD to validate the input against (repeatable)")
	return cmd
}

func runConvert(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	conv, err := newConverter(cmd, cfg)
	if err != nil {
		return err
	}

	inName, _ := cmd.Flags().GetString("in")
	in, err := openInput(cmd, inName)
	if err != nil {
		return err
	}
	defer in.Close()

	var out bytes.Buffer
	_, convErr := conv.Convert(cmd.Context(), in, &out)
	if convErr != nil && !errors.Is(convErr, convert.ErrNoRecords) {
		return convErr
	}

	outName, _ := cmd.Flags().GetString("out")
	if err := writeOutput(cmd, outName, out.Bytes()); err != nil {
		return err
	}
	return convErr
}

func newConverter(cmd *cobra.Command, cfg *config.Config) (*service.Converter, error) {
	convCfg, discover, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	opts := []service.ConverterOption{
		service.WithLogger(logging.Logger),
		service.WithFieldDiscovery(discover),
	}

	if len(cfg.Schemas) > 0 {
		v, err := schema.Load(cfg.Schemas...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, service.WithSchemas(v))
	}

	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		opts = append(opts, service.WithProgress(func(total int) service.ProgressBar {
			bar, err := progress.Start(os.Stderr, "placemarks", total)
			if err != nil {
				logging.Logger.Debugw("progress bar unavailable", "error", err)
			}
			return bar
		}))
	}
	return service.NewConverter(convCfg, opts...)
}
