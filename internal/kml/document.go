// Package kml decodes the parts of a KML document the converter needs:
// Point placemarks with their ExtendedData attributes, and the Schema
// declarations that name those attributes.
package kml

import (
	"strings"

	"kml2gpx/internal/fields"
)

// Document is a decoded KML file.
type Document struct {
	Schemas    []Schema
	Placemarks []*Placemark
}

// Schema is a <Schema> declaration.
type Schema struct {
	ID     string        `xml:"id,attr"`
	Name   string        `xml:"name,attr"`
	Fields []SimpleField `xml:"SimpleField"`
}

// SimpleField declares one typed attribute.
type SimpleField struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

// DeclaredFields lists the attribute names declared by all schemas, in
// document order, without duplicates.
func (d *Document) DeclaredFields() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range d.Schemas {
		for _, f := range s.Fields {
			if f.Name == "" || seen[f.Name] {
				continue
			}
			seen[f.Name] = true
			out = append(out, f.Name)
		}
	}
	return out
}

// Placemark is a single <Placemark>. It implements fields.Record.
type Placemark struct {
	ID           string        `xml:"id,attr"`
	Title        string        `xml:"name"`
	Desc         string        `xml:"description"`
	Point        *Point        `xml:"Point"`
	ExtendedData *ExtendedData `xml:"ExtendedData"`

	ordinal int
}

// Point is the only geometry the converter reads.
type Point struct {
	Coordinates string `xml:"coordinates"`
}

type ExtendedData struct {
	SchemaData []SchemaData `xml:"SchemaData"`
	Data       []Data       `xml:"Data"`
}

type SchemaData struct {
	SchemaURL  string       `xml:"schemaUrl,attr"`
	SimpleData []SimpleData `xml:"SimpleData"`
}

type SimpleData struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// Data is the untyped <Data name="..."><value/></Data> form.
type Data struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
}

// Ordinal is the 1-based position of the placemark in its document.
func (p *Placemark) Ordinal() int {
	return p.ordinal
}

func (p *Placemark) Values(name string) []string {
	if p.ExtendedData == nil {
		return nil
	}
	var out []string
	for _, sd := range p.ExtendedData.SchemaData {
		for _, v := range sd.SimpleData {
			if v.Name == name {
				out = append(out, v.Value)
			}
		}
	}
	for _, d := range p.ExtendedData.Data {
		if d.Name == name {
			out = append(out, d.Value)
		}
	}
	return out
}

func (p *Placemark) HasAttributes() bool {
	return p.ExtendedData != nil &&
		(len(p.ExtendedData.SchemaData) > 0 || len(p.ExtendedData.Data) > 0)
}

func (p *Placemark) Geometry() (string, bool) {
	if p.Point == nil {
		return "", false
	}
	c := strings.TrimSpace(p.Point.Coordinates)
	return c, c != ""
}

func (p *Placemark) Description() string {
	return strings.TrimSpace(p.Desc)
}

func (p *Placemark) Name() string {
	return strings.TrimSpace(p.Title)
}

// Records returns the placemarks as pipeline input, in document order.
func (d *Document) Records() []fields.Record {
	out := make([]fields.Record, len(d.Placemarks))
	for i, p := range d.Placemarks {
		out[i] = p
	}
	return out
}
