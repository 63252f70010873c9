package geo

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Extent is a rectangular bounding box in decimal degrees.
type Extent struct {
	West  float64 `mapstructure:"west" json:"west"`
	East  float64 `mapstructure:"east" json:"east"`
	North float64 `mapstructure:"north" json:"north"`
	South float64 `mapstructure:"south" json:"south"`
}

// Bound names a single edge of an Extent.
type Bound string

const (
	South Bound = "south"
	North Bound = "north"
	West  Bound = "west"
	East  Bound = "east"
)

// USFSExtent is the published extent of the USFS recreation site data set.
var USFSExtent = Extent{
	West:  -177.596546,
	East:  -8.244094,
	North: 61.082222,
	South: 11.358620,
}

// Contains is a closed-interval test on both axes; points exactly on an
// edge are inside.
func (e Extent) Contains(c Coordinate) bool {
	return e.South <= c.Lat && c.Lat <= e.North &&
		e.West <= c.Lon && c.Lon <= e.East
}

// Violations lists the edges c lies beyond, in south, north, west, east
// order. An empty result means c is inside the extent.
func (e Extent) Violations(c Coordinate) []Bound {
	var out []Bound
	if c.Lat < e.South {
		out = append(out, South)
	}
	if c.Lat > e.North {
		out = append(out, North)
	}
	if c.Lon < e.West {
		out = append(out, West)
	}
	if c.Lon > e.East {
		out = append(out, East)
	}
	return out
}

// Valid reports whether the edges are ordered and within degree range.
func (e Extent) Valid() error {
	switch {
	case e.South > e.North:
		return errors.Newf("south %g is greater than north %g", e.South, e.North)
	case e.West > e.East:
		return errors.Newf("west %g is greater than east %g", e.West, e.East)
	case e.South < -90 || e.North > 90:
		return errors.Newf("latitude bounds %g..%g outside -90..90", e.South, e.North)
	case e.West < -180 || e.East > 180:
		return errors.Newf("longitude bounds %g..%g outside -180..180", e.West, e.East)
	}
	return nil
}

func (e Extent) String() string {
	return fmt.Sprintf("W%g E%g N%g S%g", e.West, e.East, e.North, e.South)
}
