package outcome

import "quantgen/internal/diag"

// Filter keeps the items validator accepts. Diagnostics of every item are
// concatenated in item order.
func Filter[T any](items []T, validator func(T) Validity) Result[[]T] {
	kept := make([]T, 0, len(items))
	var ds []diag.Diagnostic
	for _, item := range items {
		v := validator(item)
		ds = append(ds, v.diagnostics...)
		if v.valid {
			kept = append(kept, item)
		}
	}
	return Result[[]T]{value: kept, diagnostics: ds}
}

// Collect runs process over items and keeps the present outputs in order.
func Collect[T, U any](items []T, process func(T) Optional[U]) Result[[]U] {
	out := make([]U, 0, len(items))
	var ds []diag.Diagnostic
	for _, item := range items {
		o := process(item)
		ds = append(ds, o.diagnostics...)
		if o.has {
			out = append(out, o.value)
		}
	}
	return Result[[]U]{value: out, diagnostics: ds}
}
