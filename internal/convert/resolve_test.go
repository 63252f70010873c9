package convert

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kml2gpx/internal/fields"
	"kml2gpx/pkg/geo"
)

func TestParseGeometry(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    geo.Coordinate
		wantErr bool
	}{
		{name: "lon,lat", input: "-122.4,37.8", want: geo.Coordinate{Lat: 37.8, Lon: -122.4}},
		{name: "with altitude", input: "-122.4,37.8,0", want: geo.Coordinate{Lat: 37.8, Lon: -122.4}},
		{name: "spaces", input: " -122.4 , 37.8 ", want: geo.Coordinate{Lat: 37.8, Lon: -122.4}},
		{name: "several tuples", input: "-122.4,37.8 -122.5,37.9", want: geo.Coordinate{Lat: 37.8, Lon: -122.4}},
		{name: "single value", input: "-122.4", wantErr: true},
		{name: "text", input: "west,north", wantErr: true},
		{name: "nan", input: "NaN,37.8", wantErr: true},
		{name: "empty latitude", input: "-122.4,", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGeometry(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	fallback := &FieldPair{Lon: "LONGITUDE", Lat: "LATITUDE"}

	tests := []struct {
		name         string
		fallback     *FieldPair
		rec          fakeRecord
		want         geo.Coordinate
		wantSwapped  bool
		wantFallback bool
		wantErr      error
	}{
		{
			name: "western point kept as is",
			rec:  fakeRecord{geom: "-122.4,37.8"},
			want: geo.Coordinate{Lat: 37.8, Lon: -122.4},
		},
		{
			name:        "positive longitude swapped",
			rec:         fakeRecord{geom: "37.8,-122.4"},
			want:        geo.Coordinate{Lat: 37.8, Lon: -122.4},
			wantSwapped: true,
		},
		{
			name:         "fallback fields",
			fallback:     fallback,
			rec:          fakeRecord{attrs: fields.Map{"LONGITUDE": {"-105.5"}, "LATITUDE": {"39.1"}}},
			want:         geo.Coordinate{Lat: 39.1, Lon: -105.5},
			wantFallback: true,
		},
		{
			name:         "unparseable geometry falls back",
			fallback:     fallback,
			rec:          fakeRecord{geom: "n/a", attrs: fields.Map{"LONGITUDE": {"-105.5"}, "LATITUDE": {"39.1"}}},
			want:         geo.Coordinate{Lat: 39.1, Lon: -105.5},
			wantFallback: true,
		},
		{
			name:         "fallback fields swapped too",
			fallback:     fallback,
			rec:          fakeRecord{attrs: fields.Map{"LONGITUDE": {"39.1"}, "LATITUDE": {"-105.5"}}},
			want:         geo.Coordinate{Lat: 39.1, Lon: -105.5},
			wantSwapped:  true,
			wantFallback: true,
		},
		{
			name:    "no geometry and no fallback configured",
			rec:     fakeRecord{},
			wantErr: ErrUnresolvable,
		},
		{
			name:     "fallback field empty",
			fallback: fallback,
			rec:      fakeRecord{attrs: fields.Map{"LONGITUDE": {"-105.5"}}},
			wantErr:  ErrUnresolvable,
		},
		{
			name:     "fallback field not numeric",
			fallback: fallback,
			rec:      fakeRecord{attrs: fields.Map{"LONGITUDE": {"-105.5"}, "LATITUDE": {"north"}}},
			wantErr:  ErrUnresolvable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.fallback, nil, 6)
			res, err := r.Resolve(tt.rec)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Coordinate)
			assert.Equal(t, tt.wantSwapped, res.Swapped)
			assert.Equal(t, tt.wantFallback, res.FromFallback)
		})
	}
}

func TestResolver_CustomPredicateAndPrecision(t *testing.T) {
	r := NewResolver(nil, geo.NeverSwap, 2)
	res, err := r.Resolve(fakeRecord{geom: "151.2093,-33.8688"})
	require.NoError(t, err)
	assert.False(t, res.Swapped)
	assert.Equal(t, geo.Coordinate{Lat: -33.87, Lon: 151.21}, res.Coordinate)
	assert.Equal(t, geo.Coordinate{Lat: -33.8688, Lon: 151.2093}, res.Original)
}
