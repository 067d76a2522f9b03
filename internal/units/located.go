package units

import "quantgen/internal/source"

// Located is a raw argument value together with where it was written.
// A nil Value means the argument was absent or explicitly null.
type Located[T any] struct {
	Value *T
	Span  source.Span
}

// At builds a set Located value.
func At[T any](v T, sp source.Span) Located[T] {
	return Located[T]{Value: &v, Span: sp}
}

func (l Located[T]) Set() bool {
	return l.Value != nil
}

// Get returns the value or the zero value when unset.
func (l Located[T]) Get() T {
	if l.Value == nil {
		var zero T
		return zero
	}
	return *l.Value
}

// List is a raw list argument. Items may contain nil entries for nulls;
// Spans holds the location of every item.
type List[T any] struct {
	Items []*T
	Spans []source.Span
	Span  source.Span
	// Given is false when the argument was not written at all.
	Given bool
}

// ListOf builds a List whose items all sit at sp.
func ListOf[T any](sp source.Span, items ...*T) List[T] {
	spans := make([]source.Span, len(items))
	for i := range spans {
		spans[i] = sp
	}
	return List[T]{Items: items, Spans: spans, Span: sp, Given: true}
}

func (l List[T]) itemSpan(i int) source.Span {
	if i >= 0 && i < len(l.Spans) {
		return l.Spans[i]
	}
	return l.Span
}
