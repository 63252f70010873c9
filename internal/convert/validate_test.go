package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kml2gpx/pkg/geo"
)

func TestCheckBounds(t *testing.T) {
	tests := []struct {
		name    string
		input   geo.Coordinate
		wantBad bool
		wantMsg string
	}{
		{name: "inside", input: geo.Coordinate{Lat: 37.8, Lon: -122.4}},
		{name: "on edge", input: geo.Coordinate{Lat: geo.USFSExtent.South, Lon: geo.USFSExtent.East}},
		{
			name:    "south",
			input:   geo.Coordinate{Lat: 5, Lon: -100},
			wantBad: true,
			wantMsg: "lat/lon 5, -100 outside extent (beyond south)",
		},
		{
			name:    "swapped pair",
			input:   geo.Coordinate{Lat: 122.4, Lon: 37.8},
			wantBad: true,
			wantMsg: "lat/lon 122.4, 37.8 outside extent (beyond north, east)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, bad := CheckBounds(tt.input, geo.USFSExtent)
			assert.Equal(t, tt.wantBad, bad)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestIncludes(t *testing.T) {
	filter := geo.Extent{West: -178, East: -8, North: 62, South: 10}
	assert.True(t, Includes(geo.Coordinate{Lat: 10, Lon: -178}, filter))
	assert.True(t, Includes(geo.Coordinate{Lat: 62, Lon: -8}, filter))
	assert.False(t, Includes(geo.Coordinate{Lat: 5, Lon: -100}, filter))
}
