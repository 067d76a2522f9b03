package outcome

import (
	"slices"

	"quantgen/internal/diag"
)

// Result is an always-present value plus diagnostics. Stages that can fail
// must return Optional instead.
type Result[T any] struct {
	value       T
	diagnostics []diag.Diagnostic
}

func NewResult[T any](value T, ds ...diag.Diagnostic) Result[T] {
	return Result[T]{value: value, diagnostics: slices.Clone(ds)}
}

func (r Result[T]) Value() T {
	return r.value
}

// Diagnostics returns a copy of the carried diagnostics.
func (r Result[T]) Diagnostics() []diag.Diagnostic {
	return slices.Clone(r.diagnostics)
}

// AddDiagnostics appends ds.
func (r Result[T]) AddDiagnostics(ds ...diag.Diagnostic) Result[T] {
	r.diagnostics = concat(r.diagnostics, ds)
	return r
}

// AsOptional views r as a present Optional. It is a pure projection.
func (r Result[T]) AsOptional() Optional[T] {
	return Optional[T]{value: r.value, has: true, diagnostics: r.diagnostics}
}

// Validate downgrades r to an Optional that is empty when validator rejects the value.
func (r Result[T]) Validate(validator func(T) Validity) Optional[T] {
	return r.AsOptional().Validate(validator)
}

// MapResult applies f and stays within the always-present family.
func MapResult[T, U any](r Result[T], f func(T) U) Result[U] {
	return Result[U]{value: f(r.value), diagnostics: r.diagnostics}
}

// ThenResult chains an infallible stage, concatenating diagnostics.
func ThenResult[T, U any](r Result[T], next func(T) Result[U]) Result[U] {
	out := next(r.value)
	out.diagnostics = concat(r.diagnostics, out.diagnostics)
	return out
}

// MergeResult chains a fallible stage, explicitly downgrading to Optional.
func MergeResult[T, U any](r Result[T], next func(T) Optional[U]) Optional[U] {
	return Then(r.AsOptional(), next)
}
