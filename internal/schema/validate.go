// Package schema checks input documents against the OGC KML XSDs. The result
// is informational: invalid KML is still converted.
package schema

import (
	"bytes"
	"io/fs"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/jacoelho/xsd"
	xsderrors "github.com/jacoelho/xsd/errors"
)

// maxViolations caps how many violations a Report keeps.
const maxViolations = 10

// Validator holds compiled schemas, e.g. ogckml22.xsd and kml22gx.xsd.
type Validator struct {
	schemas []named
}

type named struct {
	name   string
	schema *xsd.Schema
}

// Report is the outcome of validating one document against one schema.
type Report struct {
	Schema     string
	Valid      bool
	Violations []string
	// Total counts all violations, including those beyond Violations.
	Total int
	// Err is set when validation could not run at all.
	Err error
}

// Load compiles the schema files at paths.
func Load(paths ...string) (*Validator, error) {
	v := &Validator{}
	for _, p := range paths {
		s, err := xsd.LoadFile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "load schema %s", p)
		}
		v.schemas = append(v.schemas, named{name: filepath.Base(p), schema: s})
	}
	return v, nil
}

// LoadFS compiles schemas from fsys; imports are resolved within fsys.
func LoadFS(fsys fs.FS, locations ...string) (*Validator, error) {
	v := &Validator{}
	for _, loc := range locations {
		s, err := xsd.Load(fsys, loc)
		if err != nil {
			return nil, errors.Wrapf(err, "load schema %s", loc)
		}
		v.schemas = append(v.schemas, named{name: loc, schema: s})
	}
	return v, nil
}

// Len is the number of loaded schemas.
func (v *Validator) Len() int {
	if v == nil {
		return 0
	}
	return len(v.schemas)
}

// Validate checks doc against every loaded schema, in load order.
func (v *Validator) Validate(doc []byte) []Report {
	if v == nil {
		return nil
	}
	reports := make([]Report, 0, len(v.schemas))
	for _, s := range v.schemas {
		r := Report{Schema: s.name}
		err := s.schema.Validate(bytes.NewReader(doc))
		switch violations, ok := xsderrors.AsValidations(err); {
		case err == nil:
			r.Valid = true
		case ok:
			r.Total = len(violations)
			for i := range violations {
				if i == maxViolations {
					break
				}
				r.Violations = append(r.Violations, violations[i].Error())
			}
		default:
			r.Err = err
		}
		reports = append(reports, r)
	}
	return reports
}
