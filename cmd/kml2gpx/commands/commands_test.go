package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-gpx"

	"kml2gpx/internal/schema"
)

const recAreas = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2"><Document>
  <Schema name="recareas" id="recareas">
    <SimpleField name="RECAREANAM" type="string"/>
    <SimpleField name="RECAREAID" type="string"/>
    <SimpleField name="RECAREADES" type="string"/>
    <SimpleField name="FEEDESCRIP" type="string"/>
  </Schema>
  <Placemark>
    <ExtendedData><SchemaData schemaUrl="#recareas">
      <SimpleData name="RECAREANAM">Lost Lake</SimpleData>
      <SimpleData name="RECAREAID">1042</SimpleData>
      <SimpleData name="RECAREADES">&lt;p&gt;Lakeside camping.&lt;/p&gt;</SimpleData>
      <SimpleData name="FEEDESCRIP">$10</SimpleData>
    </SchemaData></ExtendedData>
    <Point><coordinates>-121.8,45.5</coordinates></Point>
  </Placemark>
</Document></kml>`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	root := NewRootCmd()
	root.PersistentPreRunE = nil

	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestConvertCommand(t *testing.T) {
	out, err := execute(t, recAreas, "convert", "--quiet")
	require.NoError(t, err)

	doc, err := gpx.Read(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, doc.Wpt, 1)
	assert.Equal(t, "Lost Lake", doc.Wpt[0].Name)
	assert.Equal(t, "Lakeside camping.\n\nFees:         $10", doc.Wpt[0].Desc)
	assert.Equal(t, 45.5, doc.Wpt[0].Lat)
}

func TestConvertCommand_FilesAndEmptyInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "empty.kml")
	outPath := filepath.Join(dir, "empty.gpx")
	require.NoError(t, os.WriteFile(in, []byte(`<kml><Document/></kml>`), 0o600))

	_, err := execute(t, "", "convert", "-q", "--in", in, "--out", outPath)
	require.Error(t, err)

	data, readErr := os.ReadFile(outPath)
	require.NoError(t, readErr)
	doc, err := gpx.Read(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, doc.Wpt)
}

func TestConvertCommand_UnknownProfile(t *testing.T) {
	_, err := execute(t, recAreas, "convert", "-q", "--profile", "nps")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown profile")
}

func TestFieldsCommand(t *testing.T) {
	out, err := execute(t, recAreas, "fields")
	require.NoError(t, err)
	assert.Equal(t, "RECAREANAM\nRECAREAID\nRECAREADES\nFEEDESCRIP\n", out)
}

func TestProfilesCommand(t *testing.T) {
	out, err := execute(t, "", "profiles")
	require.NoError(t, err)
	assert.Contains(t, out, "* usfs ")
	assert.Contains(t, out, "blm")
}

func TestValidateCommand_NeedsSchemas(t *testing.T) {
	_, err := execute(t, "", "validate", "missing.kml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schemas configured")
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	ok := printReport(&buf, "a.kml", schema.Report{Schema: "kml.xsd", Total: 12, Violations: []string{"bad element"}})
	assert.False(t, ok)
	assert.Equal(t, "a.kml: kml.xsd: 12 violation(s)\n  bad element\n  ... and 11 more\n", buf.String())

	buf.Reset()
	assert.True(t, printReport(&buf, "a.kml", schema.Report{Schema: "kml.xsd", Valid: true}))
	assert.Equal(t, "a.kml: kml.xsd: valid\n", buf.String())
}
