package outcome

import (
	"fmt"
	"slices"

	"quantgen/internal/diag"
)

// Optional is a value that may be absent, plus diagnostics. Absent values
// carry the diagnostics explaining their absence.
type Optional[T any] struct {
	value       T
	has         bool
	diagnostics []diag.Diagnostic
}

func Empty[T any](ds ...diag.Diagnostic) Optional[T] {
	return Optional[T]{diagnostics: slices.Clone(ds)}
}

func Present[T any](value T, ds ...diag.Diagnostic) Optional[T] {
	return Optional[T]{value: value, has: true, diagnostics: slices.Clone(ds)}
}

func (o Optional[T]) HasResult() bool {
	return o.has
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	if !o.has {
		var zero T
		return zero, false
	}
	return o.value, true
}

// MustGet returns the value and panics when it is absent; reading an absent
// value is a programming error.
func (o Optional[T]) MustGet() T {
	if !o.has {
		panic(fmt.Errorf("outcome: value of empty Optional[%T] read", o.value))
	}
	return o.value
}

// Diagnostics returns a copy of the carried diagnostics.
func (o Optional[T]) Diagnostics() []diag.Diagnostic {
	return slices.Clone(o.diagnostics)
}

// Validate runs validator on a present value. An invalid verdict degrades the
// Optional to empty; either way the diagnostics are concatenated. An empty
// Optional is returned unchanged.
func (o Optional[T]) Validate(validator func(T) Validity) Optional[T] {
	if !o.has {
		return o
	}
	v := validator(o.value)
	out := Optional[T]{diagnostics: concat(o.diagnostics, v.diagnostics)}
	if v.valid {
		out.value, out.has = o.value, true
	}
	return out
}

// Merge is the same-type form of Then.
func (o Optional[T]) Merge(next func(T) Optional[T]) Optional[T] {
	return Then(o, next)
}

// AddDiagnostics appends ds without changing presence.
func (o Optional[T]) AddDiagnostics(ds ...diag.Diagnostic) Optional[T] {
	o.diagnostics = concat(o.diagnostics, ds)
	return o
}

// Reduce drops the value and keeps the verdict.
func (o Optional[T]) Reduce() Validity {
	return Validity{valid: o.has, diagnostics: o.diagnostics}
}

// Then continues a present value into next and concatenates diagnostics
// whether or not next produces a value. Emptiness propagates unchanged and
// next is not called.
func Then[T, U any](o Optional[T], next func(T) Optional[U]) Optional[U] {
	if !o.has {
		return Optional[U]{diagnostics: o.diagnostics}
	}
	out := next(o.value)
	out.diagnostics = concat(o.diagnostics, out.diagnostics)
	return out
}

// Map applies an infallible f to a present value. Diagnostics pass through.
// Use Then or Validate for anything that can fail.
func Map[T, U any](o Optional[T], f func(T) U) Optional[U] {
	if !o.has {
		return Optional[U]{diagnostics: o.diagnostics}
	}
	return Optional[U]{value: f(o.value), has: true, diagnostics: o.diagnostics}
}

// AsEmpty discards the value, keeping only the diagnostics.
func AsEmpty[U, T any](o Optional[T]) Optional[U] {
	return Optional[U]{diagnostics: o.diagnostics}
}
