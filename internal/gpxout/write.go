// Package gpxout serializes waypoints as a GPX 1.1 document.
package gpxout

import (
	"encoding/xml"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-gpx"

	"kml2gpx/internal/models"
)

// Creator is written to the gpx creator attribute.
const Creator = "kml2gpx"

// Document builds the GPX document for wpts, in order.
func Document(wpts []models.Waypoint) *gpx.GPX {
	g := &gpx.GPX{
		Version: "1.1",
		Creator: Creator,
		Wpt:     make([]*gpx.WptType, 0, len(wpts)),
	}
	for _, w := range wpts {
		g.Wpt = append(g.Wpt, &gpx.WptType{
			Lat:  w.Coordinate.Lat,
			Lon:  w.Coordinate.Lon,
			Name: w.Name,
			Desc: w.Description,
		})
	}
	return g
}

// Write writes an indented GPX document with an XML header to w.
func Write(w io.Writer, wpts []models.Waypoint) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(err, "write gpx header")
	}
	if err := Document(wpts).WriteIndent(w, "", "  "); err != nil {
		return errors.Wrap(err, "write gpx")
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return errors.Wrap(err, "write gpx")
	}
	return nil
}
