package geo

import (
	"fmt"
	"math"
)

// Coordinate is a point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%g, %g", c.Lat, c.Lon)
}

// Swapped returns the coordinate with latitude and longitude exchanged.
func (c Coordinate) Swapped() Coordinate {
	return Coordinate{Lat: c.Lon, Lon: c.Lat}
}

// Round caps both axes at the given number of decimal places.
// A negative value leaves the coordinate untouched.
func (c Coordinate) Round(places int) Coordinate {
	if places < 0 {
		return c
	}
	p := math.Pow10(places)
	return Coordinate{
		Lat: math.Round(c.Lat*p) / p,
		Lon: math.Round(c.Lon*p) / p,
	}
}

// SwapPredicate reports whether a resolved coordinate looks like its axes
// were transposed at data entry. It is a heuristic over the expected
// region of the data set, never a certainty.
type SwapPredicate func(c Coordinate) bool

// WesternHemisphere flags any coordinate with a positive longitude. All
// North American and U.S. territory points have negative longitudes and
// positive latitudes, so a positive longitude most likely holds the latitude.
func WesternHemisphere(c Coordinate) bool {
	return c.Lon > 0
}

// NeverSwap disables axis-swap repair.
func NeverSwap(Coordinate) bool {
	return false
}

var swapPredicates = map[string]SwapPredicate{
	"western-hemisphere": WesternHemisphere,
	"none":               NeverSwap,
}

// LookupSwapPredicate resolves a configured predicate name.
func LookupSwapPredicate(name string) (SwapPredicate, bool) {
	if name == "" {
		return WesternHemisphere, true
	}
	p, ok := swapPredicates[name]
	return p, ok
}
