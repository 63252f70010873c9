// Package fields reads named attribute values off a placemark regardless of
// the source dialect, and reduces HTML-bearing values to plain text.
package fields

import "strings"

// Attributes is the named-value lookup of a single placemark: every text
// fragment found under the child element whose name attribute equals name.
type Attributes interface {
	Values(name string) []string
}

// Record is a raw placemark as produced by the KML decoder.
type Record interface {
	Attributes

	// HasAttributes reports whether the placemark carries an attribute
	// block at all (ExtendedData/SchemaData).
	HasAttributes() bool

	// Geometry returns the "lon,lat[,alt]" text of an embedded Point.
	Geometry() (string, bool)

	// Name and Description return the placemark's own name and
	// description elements.
	Name() string
	Description() string
}

// RawText concatenates all fragments of the named field and trims the
// result. An absent field yields "".
func RawText(a Attributes, name string) string {
	if a == nil || name == "" {
		return ""
	}
	return strings.TrimSpace(strings.Join(a.Values(name), ""))
}

// PlainText is RawText with embedded markup reduced to its text content.
func PlainText(a Attributes, name string) string {
	return StripMarkup(RawText(a, name))
}

// Map is an in-memory Attributes, used for tests and for records that were
// not read from KML.
type Map map[string][]string

func (m Map) Values(name string) []string {
	return m[name]
}
