package outcome

import (
	"slices"

	"quantgen/internal/diag"
)

// Validity is a verdict plus the diagnostics explaining it.
// The zero value is invalid without diagnostics.
type Validity struct {
	valid       bool
	diagnostics []diag.Diagnostic
}

func Valid() Validity {
	return Validity{valid: true}
}

// ValidWith is a valid verdict that still carries diagnostics, typically warnings.
func ValidWith(ds ...diag.Diagnostic) Validity {
	return Validity{valid: true, diagnostics: slices.Clone(ds)}
}

// Invalid builds a failed verdict. An empty ds is legal when the cause was
// reported by an earlier stage.
func Invalid(ds ...diag.Diagnostic) Validity {
	return Validity{diagnostics: slices.Clone(ds)}
}

// Conditional is valid when cond holds. Otherwise it is invalid and carries
// the diagnostics returned by onFalse, which is only called in that case.
func Conditional(cond bool, onFalse func() []diag.Diagnostic) Validity {
	if cond {
		return Valid()
	}
	if onFalse == nil {
		return Invalid()
	}
	return Invalid(onFalse()...)
}

// ConditionalOne is Conditional for a single, possibly suppressed, diagnostic.
func ConditionalOne(cond bool, onFalse func() *diag.Diagnostic) Validity {
	if cond {
		return Valid()
	}
	if onFalse == nil {
		return Invalid()
	}
	return Invalid(diag.Of(onFalse())...)
}

// WarnIf is always valid; it carries the diagnostic from warning when cond holds.
func WarnIf(cond bool, warning func() *diag.Diagnostic) Validity {
	if !cond || warning == nil {
		return Valid()
	}
	return ValidWith(diag.Of(warning())...)
}

func (v Validity) IsValid() bool {
	return v.valid
}

func (v Validity) IsInvalid() bool {
	return !v.valid
}

// Diagnostics returns a copy of the carried diagnostics.
func (v Validity) Diagnostics() []diag.Diagnostic {
	return slices.Clone(v.diagnostics)
}

// Validate continues with next only while v is valid. An invalid v is
// returned unchanged and next is never called. Otherwise the verdicts are
// combined and the diagnostics of v precede those of next.
func (v Validity) Validate(next func() Validity) Validity {
	if !v.valid {
		return v
	}
	return v.And(next())
}

// And is the eager form of Validate: both sides are already evaluated.
func (v Validity) And(other Validity) Validity {
	return Validity{
		valid:       v.valid && other.valid,
		diagnostics: concat(v.diagnostics, other.diagnostics),
	}
}

// AddDiagnostics appends ds without changing the verdict.
func (v Validity) AddDiagnostics(ds ...diag.Diagnostic) Validity {
	return Validity{valid: v.valid, diagnostics: concat(v.diagnostics, ds)}
}

// Merge continues into an Optional-producing stage. An invalid v yields an
// empty Optional carrying only v's diagnostics; otherwise next's outcome is
// kept and v's diagnostics are prepended to it.
func Merge[T any](v Validity, next func() Optional[T]) Optional[T] {
	if !v.valid {
		return Empty[T](v.diagnostics...)
	}
	out := next()
	out.diagnostics = concat(v.diagnostics, out.diagnostics)
	return out
}

// Transform wraps the value produced by value when v is valid.
func Transform[T any](v Validity, value func() T) Optional[T] {
	if !v.valid {
		return Empty[T](v.diagnostics...)
	}
	return Present(value(), v.diagnostics...)
}

// TransformValue is Transform for an already computed value.
func TransformValue[T any](v Validity, value T) Optional[T] {
	if !v.valid {
		return Empty[T](v.diagnostics...)
	}
	return Present(value, v.diagnostics...)
}

// All combines already evaluated verdicts in order.
func All(vs ...Validity) Validity {
	out := Valid()
	for _, v := range vs {
		out = out.And(v)
	}
	return out
}

// concat never appends in place; carried slices are shared read-only.
func concat(a, b []diag.Diagnostic) []diag.Diagnostic {
	if len(a)+len(b) == 0 {
		return nil
	}
	return slices.Concat(a, b)
}
