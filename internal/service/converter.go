package service

import (
	"bytes"
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"kml2gpx/internal/convert"
	"kml2gpx/internal/gpxout"
	"kml2gpx/internal/kml"
	"kml2gpx/internal/logging"
	"kml2gpx/internal/schema"
)

// ProgressBar is a started progress display.
type ProgressBar interface {
	Increment()
	Stop()
}

// ProgressFunc starts a progress display for total placemarks.
type ProgressFunc func(total int) ProgressBar

// Converter turns one KML document into one GPX document.
type Converter struct {
	cfg      convert.Config
	discover bool
	schemas  *schema.Validator
	logger   *zap.SugaredLogger
	progress ProgressFunc
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithFieldDiscovery builds the description mapping from each document's
// schema declaration instead of the configured mapping.
func WithFieldDiscovery(on bool) ConverterOption {
	return func(c *Converter) { c.discover = on }
}

// WithSchemas validates every input against v before converting it.
func WithSchemas(v *schema.Validator) ConverterOption {
	return func(c *Converter) { c.schemas = v }
}

func WithLogger(l *zap.SugaredLogger) ConverterOption {
	return func(c *Converter) { c.logger = l }
}

func WithProgress(f ProgressFunc) ConverterOption {
	return func(c *Converter) { c.progress = f }
}

// NewConverter validates cfg and returns a Converter for it.
func NewConverter(cfg convert.Config, opts ...ConverterOption) (*Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Converter{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.Logger
	}
	return c, nil
}

// Convert reads KML from r and writes GPX to w. A document without
// placemarks still produces an empty GPX document, and the returned error
// then wraps convert.ErrNoRecords.
func (c *Converter) Convert(ctx context.Context, r io.Reader, w io.Writer) (*convert.Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read input")
	}

	c.validate(data)

	doc, err := kml.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	c.logger.Infof("found %d placemarks", len(doc.Placemarks))

	cfg := c.cfg
	if c.discover {
		cfg = cfg.WithDiscoveredFields(doc.DeclaredFields())
		c.logger.Debugw("discovered fields", "count", len(cfg.FieldMapping))
	}

	opts := []convert.Option{convert.WithSink(logging.DiagnosticSink(c.logger))}
	if c.progress != nil && len(doc.Placemarks) > 0 {
		bar := c.progress(len(doc.Placemarks))
		defer bar.Stop()
		opts = append(opts, convert.WithProgress(bar))
	}
	pipeline, err := convert.NewPipeline(cfg, opts...)
	if err != nil {
		return nil, err
	}

	res, procErr := pipeline.Process(ctx, doc.Records())
	if procErr != nil && !errors.Is(procErr, convert.ErrNoRecords) {
		return nil, procErr
	}

	if err := gpxout.Write(w, res.Waypoints); err != nil {
		return nil, err
	}

	s := res.Stats
	c.logger.Infow("conversion finished",
		"placemarks", s.Records,
		"waypoints", s.Emitted,
		"skipped", s.Skipped,
		"failed", s.Failed,
		"swapped", s.Swapped,
		"outside_extent", s.OutOfArea,
	)
	return res, procErr
}

// DeclaredFields lists the attribute names declared in the document's
// schema, without converting anything.
func DeclaredFields(r io.Reader) ([]string, error) {
	doc, err := kml.Decode(r)
	if err != nil {
		return nil, err
	}
	return doc.DeclaredFields(), nil
}

func (c *Converter) validate(data []byte) {
	for _, rep := range c.schemas.Validate(data) {
		switch {
		case rep.Err != nil:
			c.logger.Warnw("schema validation failed to run", "schema", rep.Schema, "error", rep.Err)
		case rep.Valid:
			c.logger.Infow("schema validation", "schema", rep.Schema, "valid", true)
		default:
			c.logger.Infow("schema validation", "schema", rep.Schema, "valid", false, "violations", rep.Total)
			for _, v := range rep.Violations {
				c.logger.Debugw("schema violation", "schema", rep.Schema, "violation", v)
			}
		}
	}
}
