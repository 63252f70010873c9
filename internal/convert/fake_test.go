package convert

import "kml2gpx/internal/fields"

type fakeRecord struct {
	attrs   fields.Map
	geom    string
	name    string
	desc    string
	noAttrs bool
	corrupt bool
}

func (f fakeRecord) Values(name string) []string {
	if f.corrupt {
		panic("corrupt attribute block")
	}
	return f.attrs[name]
}

func (f fakeRecord) HasAttributes() bool      { return !f.noAttrs }
func (f fakeRecord) Geometry() (string, bool) { return f.geom, f.geom != "" }
func (f fakeRecord) Name() string             { return f.name }
func (f fakeRecord) Description() string      { return f.desc }
