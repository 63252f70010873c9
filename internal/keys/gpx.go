package keys

import (
	"path"
	"strings"
)

// IsKML reports whether an object key names a KML upload.
func IsKML(key string) bool {
	return strings.EqualFold(path.Ext(key), ".kml")
}

// GPX returns the object key for the GPX converted from kmlKey: the same
// path with a .gpx extension, under prefix when one is given.
func GPX(prefix, kmlKey string) string {
	base := strings.TrimSuffix(kmlKey, path.Ext(kmlKey)) + ".gpx"
	if prefix == "" {
		return base
	}
	return path.Join(prefix, base)
}
