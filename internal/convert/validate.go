package convert

import (
	"fmt"
	"strings"

	"kml2gpx/pkg/geo"
)

// CheckBounds returns a warning message when c lies outside extent, naming
// the actual values and every violated bound. It never rejects anything.
func CheckBounds(c geo.Coordinate, extent geo.Extent) (string, bool) {
	violated := extent.Violations(c)
	if len(violated) == 0 {
		return "", false
	}
	names := make([]string, len(violated))
	for i, b := range violated {
		names[i] = string(b)
	}
	return fmt.Sprintf("lat/lon %s outside extent (beyond %s)", c, strings.Join(names, ", ")), true
}

// Includes reports whether c passes the inclusion filter. Edges are inside.
func Includes(c geo.Coordinate, extent geo.Extent) bool {
	return extent.Contains(c)
}
