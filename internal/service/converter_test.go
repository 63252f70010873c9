package service

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-gpx"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"kml2gpx/internal/convert"
	"kml2gpx/pkg/geo"
)

const facilities = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
<Document>
  <Schema name="facilities" id="facilities">
    <SimpleField name="FET_NAME" type="string"/>
    <SimpleField name="GlobalID" type="string"/>
    <SimpleField name="FEE" type="string"/>
  </Schema>
  <Placemark>
    <description><![CDATA[<b>Boat ramp</b> and restrooms]]></description>
    <ExtendedData><SchemaData schemaUrl="#facilities">
      <SimpleData name="FET_NAME">Lake Landing</SimpleData>
      <SimpleData name="GlobalID">{A-1}</SimpleData>
      <SimpleData name="FEE">$5</SimpleData>
    </SchemaData></ExtendedData>
    <Point><coordinates>-122.4,37.8,0</coordinates></Point>
  </Placemark>
  <Placemark>
    <ExtendedData><SchemaData schemaUrl="#facilities">
      <SimpleData name="FET_NAME">Reversed</SimpleData>
      <SimpleData name="GlobalID">{A-2}</SimpleData>
    </SchemaData></ExtendedData>
    <Point><coordinates>37.8,-122.4</coordinates></Point>
  </Placemark>
  <Placemark>
    <ExtendedData><SchemaData schemaUrl="#facilities">
      <SimpleData name="FET_NAME">Nowhere</SimpleData>
      <SimpleData name="GlobalID">{A-3}</SimpleData>
    </SchemaData></ExtendedData>
  </Placemark>
</Document>
</kml>`

const emptyDocument = `<kml xmlns="http://www.opengis.net/kml/2.2"><Document/></kml>`

func facilityConfig() convert.Config {
	return convert.Config{
		NameField:        "FET_NAME",
		IdentifierField:  "GlobalID",
		ValidationExtent: geo.USFSExtent,
		Precision:        6,
		FieldMapping:     []convert.FieldLabel{{Field: "FEE", Label: "Fee: "}},
	}
}

type fakeBar struct {
	mu      sync.Mutex
	total   int
	n       int
	stopped bool
}

func (b *fakeBar) Increment() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.n++
}

func (b *fakeBar) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
}

func TestConverter_Convert(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	bar := &fakeBar{}
	c, err := NewConverter(facilityConfig(),
		WithLogger(zap.New(core).Sugar()),
		WithProgress(func(total int) ProgressBar {
			bar.total = total
			return bar
		}),
	)
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := c.Convert(context.Background(), strings.NewReader(facilities), &out)
	require.NoError(t, err)

	assert.Equal(t, convert.Stats{Records: 3, Emitted: 2, Failed: 1, Swapped: 1}, res.Stats)
	assert.Equal(t, 3, bar.total)
	assert.Equal(t, 3, bar.n)
	assert.True(t, bar.stopped)

	doc, err := gpx.Read(&out)
	require.NoError(t, err)
	require.Len(t, doc.Wpt, 2)
	assert.Equal(t, "Lake Landing", doc.Wpt[0].Name)
	assert.Equal(t, "Boat ramp and restrooms\n\nFee: $5", doc.Wpt[0].Desc)
	assert.Equal(t, 37.8, doc.Wpt[1].Lat)
	assert.Equal(t, -122.4, doc.Wpt[1].Lon)

	assert.Equal(t, 1, logs.FilterMessage("found 3 placemarks").Len())
	assert.Equal(t, 1, logs.FilterMessage("conversion finished").Len())
	swaps := logs.FilterField(zap.String("placemark", "{A-2}")).FilterLevelExact(zap.WarnLevel)
	assert.Equal(t, 1, swaps.Len())
	assert.Equal(t, 1, logs.FilterLevelExact(zap.ErrorLevel).Len())
}

func TestConverter_Discovery(t *testing.T) {
	cfg := facilityConfig()
	cfg.FieldMapping = nil
	c, err := NewConverter(cfg, WithFieldDiscovery(true))
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := c.Convert(context.Background(), strings.NewReader(facilities), &out)
	require.NoError(t, err)
	require.NotEmpty(t, res.Waypoints)
	assert.Equal(t, "Boat ramp and restrooms\n\nFEE: $5", res.Waypoints[0].Description)
}

func TestConverter_NoPlacemarks(t *testing.T) {
	c, err := NewConverter(facilityConfig())
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := c.Convert(context.Background(), strings.NewReader(emptyDocument), &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, convert.ErrNoRecords))
	require.NotNil(t, res)
	assert.Empty(t, res.Waypoints)

	doc, err := gpx.Read(&out)
	require.NoError(t, err)
	assert.Empty(t, doc.Wpt)
}

func TestConverter_Errors(t *testing.T) {
	_, err := NewConverter(convert.Config{
		FilterExtent: &geo.Extent{West: 10, East: -10, North: 1, South: 2},
	})
	require.Error(t, err)

	c, err := NewConverter(facilityConfig())
	require.NoError(t, err)
	var out bytes.Buffer
	_, err = c.Convert(context.Background(), strings.NewReader("<gpx/>"), &out)
	require.Error(t, err)
	assert.Zero(t, out.Len())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := c.Convert(ctx, strings.NewReader(facilities), &out)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Zero(t, out.Len())
}

func TestDeclaredFields(t *testing.T) {
	got, err := DeclaredFields(strings.NewReader(facilities))
	require.NoError(t, err)
	assert.Equal(t, []string{"FET_NAME", "GlobalID", "FEE"}, got)
}
