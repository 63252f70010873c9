package convert

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"kml2gpx/internal/fields"
	"kml2gpx/pkg/geo"
)

// Resolution is the outcome of locating one record.
type Resolution struct {
	Coordinate geo.Coordinate
	// Original is the pair as read, before any swap.
	Original geo.Coordinate
	// Swapped is set when the swap predicate fired.
	Swapped bool
	// GeometryErr explains why the Point was not used, when the fallback
	// fields supplied the coordinate.
	GeometryErr  error
	FromFallback bool
}

// Resolver determines the coordinate of a record from its Point geometry or,
// failing that, from two attribute fields.
type Resolver struct {
	fallback  *FieldPair
	swap      geo.SwapPredicate
	precision int
}

// NewResolver builds a Resolver. A nil swap predicate means
// geo.WesternHemisphere.
func NewResolver(fallback *FieldPair, swap geo.SwapPredicate, precision int) *Resolver {
	if swap == nil {
		swap = geo.WesternHemisphere
	}
	return &Resolver{fallback: fallback, swap: swap, precision: precision}
}

// Resolve returns the record's coordinate. The swap is a heuristic: callers
// must report it whenever Resolution.Swapped is set.
func (r *Resolver) Resolve(rec fields.Record) (Resolution, error) {
	var res Resolution

	c, err := r.fromGeometry(rec)
	if err != nil {
		res.GeometryErr = err
		c, err = r.fromFallback(rec)
		if err != nil {
			return Resolution{}, errors.Wrapf(err, "%v", res.GeometryErr)
		}
		res.FromFallback = true
	}

	res.Original = c
	if r.swap(c) {
		c = c.Swapped()
		res.Swapped = true
	}
	res.Coordinate = c.Round(r.precision)
	return res, nil
}

var errNoPoint = errors.New("no Point found")

func (r *Resolver) fromGeometry(rec fields.Record) (geo.Coordinate, error) {
	text, ok := rec.Geometry()
	if !ok {
		return geo.Coordinate{}, errNoPoint
	}
	return ParseGeometry(text)
}

func (r *Resolver) fromFallback(rec fields.Record) (geo.Coordinate, error) {
	if r.fallback == nil {
		return geo.Coordinate{}, ErrUnresolvable
	}
	lonText := fields.RawText(rec, r.fallback.Lon)
	latText := fields.RawText(rec, r.fallback.Lat)
	if lonText == "" || latText == "" {
		return geo.Coordinate{}, errors.Wrapf(ErrUnresolvable, "%s/%s empty", r.fallback.Lon, r.fallback.Lat)
	}
	lon, err := parseDegrees(lonText)
	if err != nil {
		return geo.Coordinate{}, errors.Wrapf(ErrUnresolvable, "%s: %v", r.fallback.Lon, err)
	}
	lat, err := parseDegrees(latText)
	if err != nil {
		return geo.Coordinate{}, errors.Wrapf(ErrUnresolvable, "%s: %v", r.fallback.Lat, err)
	}
	return geo.Coordinate{Lat: lat, Lon: lon}, nil
}

// ParseGeometry reads the first two components of a "lon,lat[,alt]" KML
// coordinate string. Anything after the second comma, including further
// tuples, is ignored.
func ParseGeometry(text string) (geo.Coordinate, error) {
	parts := strings.SplitN(text, ",", 3)
	if len(parts) < 2 {
		return geo.Coordinate{}, errors.Newf("malformed coordinates %q", text)
	}
	lon, err := parseDegrees(parts[0])
	if err != nil {
		return geo.Coordinate{}, errors.Wrap(err, "longitude")
	}
	lat, err := parseDegrees(parts[1])
	if err != nil {
		return geo.Coordinate{}, errors.Wrap(err, "latitude")
	}
	return geo.Coordinate{Lat: lat, Lon: lon}, nil
}

func parseDegrees(s string) (float64, error) {
	s = strings.TrimSpace(s)
	// a trailing tuple separator belongs to the next coordinate
	if i := strings.IndexAny(s, " \t\r\n"); i >= 0 {
		s = s[:i]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Newf("not a number: %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Newf("not a finite number: %q", s)
	}
	return v, nil
}
