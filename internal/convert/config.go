// Package convert turns raw placemarks into validated waypoints. It decides,
// per record, which fields carry the location and the descriptive content,
// repairs swapped axes, checks the result against the expected extent and
// applies the optional inclusion filter.
package convert

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"kml2gpx/pkg/geo"
)

// FieldPair names the attribute fields holding longitude and latitude when a
// placemark has no Point geometry.
type FieldPair struct {
	Lon string `mapstructure:"lon"`
	Lat string `mapstructure:"lat"`
}

// FieldLabel maps a source field to the label printed before its value.
// The label carries its own padding, e.g. "Fees:         ".
type FieldLabel struct {
	Field string `mapstructure:"field"`
	Label string `mapstructure:"label"`
}

// Config describes one input dialect. It is read-only once a Pipeline has
// been built from it.
type Config struct {
	// PrimaryDescriptionField is the lead paragraph of the description.
	// When empty the placemark's own <description> is used instead.
	PrimaryDescriptionField string
	// FieldMapping is appended to the description in order.
	FieldMapping []FieldLabel
	// CoordinateFallback is consulted when there is no usable Point.
	CoordinateFallback *FieldPair
	// IdentifierField names records in diagnostics, e.g. GlobalID.
	IdentifierField string
	// NameField is the waypoint name. When empty the placemark <name> is used.
	NameField string

	ValidationExtent geo.Extent
	// FilterExtent, when set, drops every record outside it.
	FilterExtent *geo.Extent

	// Precision caps coordinates at this many decimal places. Zero means
	// DefaultPrecision; negative disables rounding.
	Precision int
	// Swap decides whether a resolved pair has its axes transposed. Nil
	// means geo.WesternHemisphere.
	Swap geo.SwapPredicate
}

// DefaultPrecision is the number of decimal places kept when Precision is
// left unset.
const DefaultPrecision = 6

func (c Config) precision() int {
	if c.Precision == 0 {
		return DefaultPrecision
	}
	return c.Precision
}

// Validate checks the configuration before any record is touched.
func (c Config) Validate() error {
	var errs []string
	if err := c.ValidationExtent.Valid(); err != nil {
		errs = append(errs, fmt.Sprintf("validation extent: %v", err))
	}
	if c.FilterExtent != nil {
		if err := c.FilterExtent.Valid(); err != nil {
			errs = append(errs, fmt.Sprintf("filter extent: %v", err))
		}
	}
	if fb := c.CoordinateFallback; fb != nil && (fb.Lon == "" || fb.Lat == "") {
		errs = append(errs, "coordinate fallback needs both lon and lat fields")
	}
	for i, m := range c.FieldMapping {
		if m.Field == "" {
			errs = append(errs, fmt.Sprintf("field mapping %d has no field name", i))
		}
	}
	if len(errs) > 0 {
		return errors.Newf("invalid conversion config:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// WithDiscoveredFields returns a copy of c whose FieldMapping lists the
// declared attribute fields in order, labelled "<FIELD>: ". Fields already
// used for the identifier, name, lead paragraph or coordinates are left out.
func (c Config) WithDiscoveredFields(declared []string) Config {
	skip := map[string]bool{
		c.IdentifierField:         true,
		c.NameField:               true,
		c.PrimaryDescriptionField: true,
	}
	if fb := c.CoordinateFallback; fb != nil {
		skip[fb.Lon] = true
		skip[fb.Lat] = true
	}

	mapping := make([]FieldLabel, 0, len(declared))
	for _, name := range declared {
		if name == "" || skip[name] {
			continue
		}
		mapping = append(mapping, FieldLabel{Field: name, Label: name + ": "})
	}
	c.FieldMapping = mapping
	return c
}
