// Package decl reads unit and quantity declarations from YAML documents.
//
// Documents are decoded through yaml.Node so that every value keeps the
// position it was written at. A file may hold several documents separated
// by "---"; each contributes to the same Document.
//
//	units:
//	  - type: UnitOfLength
//	    quantity: Length
//	    fixed:
//	      - name: Metre
//	    aliases:
//	      - name: Meter
//	        alias_of: Metre
//	    scaled:
//	      - name: Kilometre
//	        from: Metre
//	        scale: 1000
//	quantities:
//	  - type: Length
//	    unit: UnitOfLength
//	    exclude: [Meter]
package decl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"quantgen/internal/diag"
	"quantgen/internal/source"
	"quantgen/internal/units"
)

// Document is everything declared in one file.
type Document struct {
	File       source.FileID
	Units      []units.RawUnitType
	Quantities []units.RawQuantity
}

// Load reads every path into fs and parses it. A file that cannot be read is
// registered empty so that its IOLoadFileError points at the path, and it
// produces no Document.
func Load(fs *source.FileSet, paths []string, r diag.Reporter) []*Document {
	docs := make([]*Document, 0, len(paths))
	for _, path := range paths {
		id, err := fs.Load(path)
		if err != nil {
			missing := fs.AddVirtual(path, nil)
			diag.ReportError(r, diag.IOLoadFileError, source.Span{File: missing}, "failed to load file: "+err.Error()).Emit()
			continue
		}
		docs = append(docs, Parse(fs, id, r))
	}
	return docs
}

var syntaxLine = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)

// Parse decodes the declarations of file id. Syntax errors stop the file at
// the failing document; documents before it are kept.
func Parse(fs *source.FileSet, id source.FileID, r diag.Reporter) *Document {
	d := &decoder{fs: fs, file: id, r: r}
	doc := &Document{File: id}
	dec := yaml.NewDecoder(bytes.NewReader(fs.Get(id).Content))
	for {
		var root yaml.Node
		err := dec.Decode(&root)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			d.syntaxError(err)
			break
		}
		d.document(doc, &root)
	}
	return doc
}

type decoder struct {
	fs   *source.FileSet
	file source.FileID
	r    diag.Reporter
}

func (d *decoder) syntaxError(err error) {
	sp := source.Span{File: d.file}
	msg := err.Error()
	if m := syntaxLine.FindStringSubmatch(msg); m != nil {
		if line, convErr := strconv.Atoi(m[1]); convErr == nil {
			sp = d.fs.SpanAt(d.file, line, 1, 1)
			msg = m[2]
		}
	}
	diag.ReportError(d.r, diag.IODeclSyntax, sp, "invalid YAML: "+msg).Emit()
}

func (d *decoder) errorf(code diag.Code, n *yaml.Node, format string, args ...any) {
	diag.ReportError(d.r, code, d.span(n), fmt.Sprintf(format, args...)).Emit()
}

// span covers the scalar text of n including its quotes. Columns are taken as
// byte columns, which is exact for ASCII declarations.
func (d *decoder) span(n *yaml.Node) source.Span {
	length := 1
	if n.Kind == yaml.ScalarNode && n.Style&(yaml.LiteralStyle|yaml.FoldedStyle) == 0 {
		length = len(n.Value)
		if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
			length += 2
		}
	}
	return d.fs.SpanAt(d.file, n.Line, n.Column, length)
}

func (d *decoder) document(doc *Document, root *yaml.Node) {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return
	}
	body := root.Content[0]
	if isNull(body) {
		return
	}
	d.mapping(body, "document", fields{
		"units": func(v *yaml.Node) {
			d.sequence(v, "units", func(item *yaml.Node) {
				doc.Units = append(doc.Units, d.unitType(item))
			})
		},
		"quantities": func(v *yaml.Node) {
			d.sequence(v, "quantities", func(item *yaml.Node) {
				doc.Quantities = append(doc.Quantities, d.quantity(item))
			})
		},
	})
}
