package decl

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quantgen/internal/diag"
	"quantgen/internal/source"
)

const lengthDecl = `units:
  - type: UnitOfLength
    quantity: Length
    fixed:
      - name: Metre
        plural: "{0}s"
    aliases:
      - name: Meter
        alias_of: Metre
    scaled:
      - name: Kilometre
        from: Metre
        scale: 1000
    prefixed:
      - name: Millimetre
        from: Metre
        metric_prefix: Milli
quantities:
  - type: Length
    unit: UnitOfLength
    exclude: [Meter]
`

func parse(t *testing.T, content string) (*source.FileSet, *Document, []diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("units.yaml", []byte(content))
	var r diag.SliceReporter
	doc := Parse(fs, id, &r)
	return fs, doc, r.Items
}

func text(fs *source.FileSet, sp source.Span) string {
	return string(fs.Get(sp.File).Content[sp.Start:sp.End])
}

func TestParseUnitType(t *testing.T) {
	fs, doc, ds := parse(t, lengthDecl)
	require.Empty(t, ds)
	require.Len(t, doc.Units, 1)

	u := doc.Units[0]
	assert.Equal(t, "UnitOfLength", u.Type.Get())
	assert.Equal(t, "Length", u.Quantity.Get())
	require.Len(t, u.Fixed, 1)
	assert.Equal(t, "Metre", u.Fixed[0].Name.Get())
	assert.Equal(t, "{0}s", u.Fixed[0].Plural.Get())
	assert.Equal(t, `"{0}s"`, text(fs, u.Fixed[0].Plural.Span))
	assert.Equal(t, "Metre", u.Aliases[0].AliasOf.Get())
	assert.Equal(t, "1000", u.Scaled[0].Scale.Get())
	assert.Equal(t, "Milli", u.Prefixed[0].MetricPrefix.Get())
	assert.False(t, u.Prefixed[0].BinaryPrefix.Set())

	start, _ := fs.Resolve(u.Scaled[0].From.Span)
	assert.Equal(t, source.LineCol{Line: 12, Col: 15}, start)

	require.Len(t, doc.Quantities, 1)
	q := doc.Quantities[0]
	require.Len(t, q.Exclude, 1)
	assert.Equal(t, "Meter", *q.Exclude[0].Items[0])
	assert.Empty(t, q.Include)
}

func TestParseListShapes(t *testing.T) {
	_, doc, ds := parse(t, `quantities:
  - type: Length
    unit: UnitOfLength
    include: [[Metre, ~], [Foot]]
  - type: Distance
    unit: UnitOfLength
    include: Metre
units:
  - type: UnitOfArea
    derived:
      - name: SquareMetre
        units: ~
`)
	require.Empty(t, ds)

	nested := doc.Quantities[0].Include
	require.Len(t, nested, 2)
	require.Len(t, nested[0].Items, 2)
	assert.Nil(t, nested[0].Items[1])
	assert.Equal(t, "Foot", *nested[1].Items[0])

	single := doc.Quantities[1].Include
	require.Len(t, single, 1)
	assert.Equal(t, "Metre", *single[0].Items[0])

	assert.False(t, doc.Units[0].Derived[0].Units.Given)
}

func TestParseReportsUnknownKeys(t *testing.T) {
	fs, doc, ds := parse(t, "units:\n  - type: UnitOfTime\n    colour: blue\n")

	require.Len(t, ds, 1)
	assert.Equal(t, diag.IODeclUnknownKey, ds[0].Code)
	assert.Equal(t, diag.SevWarning, ds[0].Severity)
	assert.Equal(t, "colour", text(fs, ds[0].Primary))
	require.Len(t, doc.Units, 1)
	assert.Equal(t, "UnitOfTime", doc.Units[0].Type.Get())
}

func TestParseShapeErrors(t *testing.T) {
	_, doc, ds := parse(t, "units:\n  - type: [A, B]\n    bias_term: maybe\n    fixed: Metre\n")

	codes := make([]diag.Code, len(ds))
	for i := range ds {
		codes[i] = ds[i].Code
	}
	assert.Equal(t, []diag.Code{diag.IODeclSyntax, diag.IODeclSyntax, diag.IODeclSyntax}, codes)
	require.Len(t, doc.Units, 1)
	assert.False(t, doc.Units[0].Type.Set())
	assert.False(t, doc.Units[0].BiasTerm.Set())
}

func TestParseSyntaxErrorKeepsEarlierDocuments(t *testing.T) {
	_, doc, ds := parse(t, "units:\n  - type: UnitOfTime\n---\nunits: [\n")

	require.Len(t, doc.Units, 1)
	require.Len(t, ds, 1)
	assert.Equal(t, diag.IODeclSyntax, ds[0].Code)
	assert.Contains(t, ds[0].Message, "invalid YAML")
}

func TestParseEmptyFile(t *testing.T) {
	_, doc, ds := parse(t, "")
	assert.Empty(t, ds)
	assert.Empty(t, doc.Units)
}

func TestLoadReportsMissingFiles(t *testing.T) {
	fs := source.NewFileSet()
	var r diag.SliceReporter

	docs := Load(fs, []string{filepath.Join(t.TempDir(), "missing.yaml")}, &r)

	assert.Empty(t, docs)
	require.Len(t, r.Items, 1)
	assert.Equal(t, diag.IOLoadFileError, r.Items[0].Code)
}

func TestParseNormalizesNames(t *testing.T) {
	decomposed := "Ångstrom"
	fs, doc, ds := parse(t, "units:\n  - type: UnitOfLength\n    fixed:\n      - name: "+decomposed+"\n")
	require.Empty(t, ds)
	require.Len(t, doc.Units, 1)

	name := doc.Units[0].Fixed[0].Name
	assert.Equal(t, "Ångstrom", name.Get())
	assert.Equal(t, decomposed, text(fs, name.Span))
}
