// Package itemlist processes list-valued declaration arguments item by item,
// dropping invalid items while remembering where each surviving item came from.
package itemlist

import (
	"errors"

	"quantgen/internal/diag"
	"quantgen/internal/outcome"
)

// Policy controls the structural checks of a Processor.
type Policy struct {
	DisallowNull      bool
	DisallowEmptyList bool
	// EmptyIsFatal turns an empty output into an absent result. Without it the
	// empty-list diagnostics are reported and processing carries on.
	EmptyIsFatal bool
}

// DefaultPolicy rejects null items and empty lists without aborting.
func DefaultPolicy() Policy {
	return Policy{DisallowNull: true, DisallowEmptyList: true}
}

// Diagnostics creates the structural diagnostics for a definition of type D.
// Returning nil suppresses a diagnostic.
type Diagnostics[D any] interface {
	EmptyList(def D) *diag.Diagnostic
	NullItem(def D, index int) *diag.Diagnostic
	EffectivelyEmpty(def D) *diag.Diagnostic
}

// List is the default product: the surviving items and, for each of them,
// the index of the raw item it came from.
type List[T any] struct {
	Items     []T
	Locations []int
}

// ProduceList is a Produce function returning the items as a List.
func ProduceList[D, T any](_ D, items []T, locations []int) outcome.Optional[List[T]] {
	return outcome.Present(List[T]{Items: items, Locations: locations})
}

// Processor validates the raw items of one list argument.
//
// Upgrade checks and converts a single raw item; item is nil only when the
// policy allows null items. Produce builds the final value from the output
// list, the definition and the location map.
type Processor[D, In, Out, R any] struct {
	Policy      Policy
	Diagnostics Diagnostics[D]
	Upgrade     func(def D, item *In, index int) outcome.Optional[Out]
	Produce     func(def D, items []Out, locations []int) outcome.Optional[R]
}

var errIncomplete = errors.New("itemlist: processor requires Diagnostics, Upgrade and Produce")

// NewProcessor builds a Processor and panics when a collaborator is missing.
func NewProcessor[D, In, Out, R any](
	policy Policy,
	diagnostics Diagnostics[D],
	upgrade func(def D, item *In, index int) outcome.Optional[Out],
	produce func(def D, items []Out, locations []int) outcome.Optional[R],
) Processor[D, In, Out, R] {
	if diagnostics == nil || upgrade == nil || produce == nil {
		panic(errIncomplete)
	}
	return Processor[D, In, Out, R]{Policy: policy, Diagnostics: diagnostics, Upgrade: upgrade, Produce: produce}
}

// Process runs the structural checks and Upgrade over items in order.
func (p Processor[D, In, Out, R]) Process(def D, items []*In) outcome.Optional[R] {
	if p.Diagnostics == nil || p.Upgrade == nil || p.Produce == nil {
		panic(errIncomplete)
	}

	acc := outcome.Valid()
	if p.Policy.DisallowEmptyList && len(items) == 0 {
		acc = acc.AddDiagnostics(diag.Of(p.Diagnostics.EmptyList(def))...)
	}

	out := make([]Out, 0, len(items))
	locations := make([]int, 0, len(items))
	for i, item := range items {
		if item == nil && p.Policy.DisallowNull {
			acc = acc.AddDiagnostics(diag.Of(p.Diagnostics.NullItem(def, i))...)
			continue
		}
		upgraded := p.Upgrade(def, item, i)
		acc = acc.AddDiagnostics(upgraded.Diagnostics()...)
		if v, ok := upgraded.Get(); ok {
			out = append(out, v)
			locations = append(locations, i)
		}
	}

	if p.Policy.DisallowEmptyList && len(out) == 0 {
		if len(items) > 0 {
			acc = acc.AddDiagnostics(diag.Of(p.Diagnostics.EffectivelyEmpty(def))...)
		}
		if p.Policy.EmptyIsFatal {
			acc = outcome.Invalid(acc.Diagnostics()...)
		}
	}

	return outcome.Merge(acc, func() outcome.Optional[R] {
		return p.Produce(def, out, locations)
	})
}
