package diagfmt

import (
	"io"

	"quantgen/internal/diag"
	"quantgen/internal/source"
)

// Short writes one line per diagnostic, sorted by position.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	out := diag.FormatShortDiagnostics(bag.Pointers(), fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
