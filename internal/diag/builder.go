package diag

import (
	"fmt"

	"quantgen/internal/source"
)

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

// Errorf builds an error diagnostic and returns its address, the shape
// expected by diagnostic strategies.
func Errorf(code Code, primary source.Span, format string, args ...any) *Diagnostic {
	d := NewError(code, primary, fmt.Sprintf(format, args...))
	return &d
}

// Warnf is Errorf for warnings.
func Warnf(code Code, primary source.Span, format string, args ...any) *Diagnostic {
	d := NewWarning(code, primary, fmt.Sprintf(format, args...))
	return &d
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
