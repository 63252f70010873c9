package convert

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"kml2gpx/internal/fields"
	"kml2gpx/internal/models"
	"kml2gpx/pkg/geo"
)

// Sink receives diagnostics as they are produced.
type Sink interface {
	Emit(d models.Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(d models.Diagnostic)

func (f SinkFunc) Emit(d models.Diagnostic) { f(d) }

// Progress is told about every record once it has been handled.
type Progress interface {
	Increment()
}

// Stats counts record outcomes for one run.
type Stats struct {
	Records   int
	Emitted   int
	Skipped   int
	Failed    int
	Swapped   int
	OutOfArea int
}

// Result is everything a run produced, in input order.
type Result struct {
	Waypoints   []models.Waypoint
	Diagnostics []models.Diagnostic
	Stats       Stats
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSink streams diagnostics to s in addition to collecting them.
func WithSink(s Sink) Option {
	return func(p *Pipeline) { p.sink = s }
}

// WithProgress reports each handled record to pr.
func WithProgress(pr Progress) Option {
	return func(p *Pipeline) { p.progress = pr }
}

// Pipeline converts placemarks into waypoints one record at a time. Every
// record is attempted exactly once and a failing record never affects the
// others.
type Pipeline struct {
	cfg      Config
	resolver *Resolver
	sink     Sink
	progress Progress
	stages   []Stage[record]
}

// record is the state of one placemark moving through the stages.
type record struct {
	ordinal  int
	src      fields.Record
	id       string
	coord    geo.Coordinate
	waypoint models.Waypoint

	run *run
}

// run accumulates the output of one Process call.
type run struct {
	p      *Pipeline
	result Result
}

// NewPipeline validates cfg and builds a Pipeline for it.
func NewPipeline(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{
		cfg:      cfg,
		resolver: NewResolver(cfg.CoordinateFallback, cfg.Swap, cfg.precision()),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.stages = []Stage[record]{
		NewStage("identify", p.identify, p.requireAttributes),
		NewStage("locate", p.locate),
		NewStage("check", p.validateBounds, p.applyFilter),
		NewStage("compose", p.compose),
	}
	return p, nil
}

// Process runs every record through the pipeline in order. Record-level
// problems are reported as diagnostics and never returned as errors; the
// error result is reserved for an empty input (ErrNoRecords) and for a
// cancelled context, in which case no partial result is returned.
func (p *Pipeline) Process(ctx context.Context, records []fields.Record) (*Result, error) {
	r := &run{p: p}
	if len(records) == 0 {
		r.emit(models.Error, "", ErrNoRecords.Error())
		return &r.result, ErrNoRecords
	}

	for i, src := range records {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "stopped after %d of %d placemarks", i, len(records))
		}
		r.result.Stats.Records++
		rec := &record{ordinal: i + 1, src: src, run: r}
		if err := runStages(ctx, p.stages, rec); err != nil {
			r.reject(rec, err)
		} else {
			r.result.Waypoints = append(r.result.Waypoints, rec.waypoint)
			r.result.Stats.Emitted++
		}
		if p.progress != nil {
			p.progress.Increment()
		}
	}
	return &r.result, nil
}

func (r *run) emit(sev models.Severity, id, msg string) {
	d := models.Diagnostic{Severity: sev, RecordID: id, Message: msg}
	r.result.Diagnostics = append(r.result.Diagnostics, d)
	if r.p.sink != nil {
		r.p.sink.Emit(d)
	}
}

func (r *run) reject(rec *record, err error) {
	if errors.Is(err, ErrSkip) {
		r.result.Stats.Skipped++
		rec.emit(models.Info, err.Error())
		return
	}
	r.result.Stats.Failed++
	rec.emit(models.Error, err.Error())
}

func (rec *record) emit(sev models.Severity, msg string) {
	rec.run.emit(sev, rec.id, msg)
}

// identify always runs first so every later diagnostic, including one for
// a panic further down, can name the record. The ordinal placeholder is set
// before anything is read from the placemark.
func (p *Pipeline) identify(_ context.Context, rec *record) error {
	rec.id = fmt.Sprintf("#%d", rec.ordinal)
	if p.cfg.IdentifierField == "" || rec.src == nil || !rec.src.HasAttributes() {
		return nil
	}
	if id := fields.PlainText(rec.src, p.cfg.IdentifierField); id != "" {
		rec.id = id
		return nil
	}
	rec.emit(models.Warning, fmt.Sprintf("no %s, using ordinal as identifier", p.cfg.IdentifierField))
	return nil
}

func (p *Pipeline) requireAttributes(_ context.Context, rec *record) error {
	if rec.src == nil {
		return errors.Wrap(ErrMalformed, "nil placemark")
	}
	if !rec.src.HasAttributes() {
		return errors.Wrap(ErrMalformed, "no ExtendedData")
	}
	return nil
}

func (p *Pipeline) locate(_ context.Context, rec *record) error {
	res, err := p.resolver.Resolve(rec.src)
	if err != nil {
		return err
	}
	if res.FromFallback && p.cfg.CoordinateFallback != nil {
		rec.emit(models.Info, fmt.Sprintf("%v, using %s/%s",
			res.GeometryErr, p.cfg.CoordinateFallback.Lon, p.cfg.CoordinateFallback.Lat))
	}
	if res.Swapped {
		rec.run.result.Stats.Swapped++
		rec.emit(models.Warning, fmt.Sprintf("switched lat/lon %s (probably entered in wrong order)", res.Coordinate))
	}
	rec.coord = res.Coordinate
	return nil
}

func (p *Pipeline) validateBounds(_ context.Context, rec *record) error {
	if msg, bad := CheckBounds(rec.coord, p.cfg.ValidationExtent); bad {
		rec.run.result.Stats.OutOfArea++
		rec.emit(models.Warning, msg)
	}
	return nil
}

func (p *Pipeline) applyFilter(_ context.Context, rec *record) error {
	if p.cfg.FilterExtent == nil || Includes(rec.coord, *p.cfg.FilterExtent) {
		return nil
	}
	return ErrOutsideFilter
}

func (p *Pipeline) compose(_ context.Context, rec *record) error {
	var desc string
	if p.cfg.PrimaryDescriptionField == "" {
		desc = composeWithLead(fields.StripMarkup(rec.src.Description()), rec.src, p.cfg.FieldMapping)
	} else {
		desc = Compose(rec.src, p.cfg.PrimaryDescriptionField, p.cfg.FieldMapping)
	}

	name := fields.StripMarkup(rec.src.Name())
	if p.cfg.NameField != "" {
		name = fields.PlainText(rec.src, p.cfg.NameField)
	}

	rec.waypoint = models.Waypoint{
		Coordinate:  rec.coord,
		Name:        name,
		Description: desc,
		RecordID:    rec.id,
	}
	return nil
}
