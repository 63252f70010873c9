package convert

import "github.com/cockroachdb/errors"

var (
	// ErrSkip marks routine exclusions; they are reported at Info level.
	ErrSkip = errors.New("record skipped")

	// ErrOutsideFilter is returned for records outside the filter extent.
	ErrOutsideFilter = errors.Mark(errors.New("outside filter extent, skipping"), ErrSkip)

	// ErrUnresolvable is returned when neither the geometry nor the
	// fallback fields yield a coordinate.
	ErrUnresolvable = errors.New("no geometry, no fallback fields")

	// ErrMalformed is returned for records missing structure every record
	// is expected to have.
	ErrMalformed = errors.New("unrecoverable problem in input")

	// ErrNoRecords is the only run-level failure: the input held no
	// placemarks at all.
	ErrNoRecords = errors.New("no placemarks found")
)
