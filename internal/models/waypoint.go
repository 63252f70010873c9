package models

import "kml2gpx/pkg/geo"

// Waypoint is one surviving placemark, ready for GPX serialization.
type Waypoint struct {
	Coordinate  geo.Coordinate `json:"coordinate"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	RecordID    string         `json:"record_id,omitempty"` // e.g., GlobalID of the source placemark
}
