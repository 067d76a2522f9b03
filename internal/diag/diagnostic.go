package diag

import (
	"quantgen/internal/source"
)

// Note is a secondary location attached to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// Of collects the non-nil diagnostics among ds, preserving order.
// Factories return nil for diagnostics a strategy chooses to suppress.
func Of(ds ...*Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(ds))
	for _, d := range ds {
		if d != nil {
			out = append(out, *d)
		}
	}
	return out
}
