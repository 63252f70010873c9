package kml

import (
	"encoding/xml"
	"io"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/html/charset"
)

// ErrNotKML is returned when the root element is not <kml>.
var ErrNotKML = errors.New("document is not KML")

// Decode streams r and collects every Placemark and Schema, at any depth of
// Document/Folder nesting. Element names are matched on their local part so
// both the OGC and the Google namespaces are accepted.
func Decode(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	doc := &Document{}
	sawRoot := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read kml")
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !sawRoot {
			if se.Name.Local != "kml" {
				return nil, errors.Wrapf(ErrNotKML, "root element <%s>", se.Name.Local)
			}
			sawRoot = true
			continue
		}

		switch se.Name.Local {
		case "Placemark":
			p := &Placemark{}
			if err := dec.DecodeElement(p, &se); err != nil {
				return nil, errors.Wrapf(err, "decode placemark %d", len(doc.Placemarks)+1)
			}
			p.ordinal = len(doc.Placemarks) + 1
			doc.Placemarks = append(doc.Placemarks, p)
		case "Schema":
			var s Schema
			if err := dec.DecodeElement(&s, &se); err != nil {
				return nil, errors.Wrap(err, "decode schema")
			}
			doc.Schemas = append(doc.Schemas, s)
		}
	}
	if !sawRoot {
		return nil, errors.Wrap(ErrNotKML, "empty document")
	}
	return doc, nil
}
