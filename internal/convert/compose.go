package convert

import (
	"strings"

	"kml2gpx/internal/fields"
)

// Compose builds a waypoint description: the plain text of primaryField as
// lead paragraph, a blank line, then one "label+text" line per mapped field
// that has content, in mapping order. Empty fields leave no trace.
func Compose(a fields.Attributes, primaryField string, mapping []FieldLabel) string {
	return composeWithLead(fields.PlainText(a, primaryField), a, mapping)
}

func composeWithLead(lead string, a fields.Attributes, mapping []FieldLabel) string {
	var b strings.Builder
	b.WriteString(lead)
	sep := "\n\n"
	for _, m := range mapping {
		text := fields.PlainText(a, m.Field)
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		sep = "\n"
		b.WriteString(m.Label)
		b.WriteString(text)
	}
	return b.String()
}
