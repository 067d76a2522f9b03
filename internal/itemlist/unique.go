package itemlist

import (
	"quantgen/internal/diag"
	"quantgen/internal/outcome"
)

// Set is a caller-owned set of already accepted items. Sharing one Set between
// several Unique processors enforces uniqueness across sibling arguments.
type Set[T comparable] map[T]struct{}

func (s Set[T]) Has(item T) bool {
	_, ok := s[item]
	return ok
}

func (s Set[T]) Add(item T) {
	s[item] = struct{}{}
}

// UniqueDiagnostics adds the duplicate diagnostic to Diagnostics.
type UniqueDiagnostics[D any] interface {
	Diagnostics[D]
	DuplicateItem(def D, index int) *diag.Diagnostic
}

// Unique processes lists whose items must not repeat, neither within one
// list nor across the lists that share the same Set.
type Unique[D any, T comparable] struct {
	Policy      Policy
	Diagnostics UniqueDiagnostics[D]
	// Check is an optional extra per-item validation, run after the
	// duplicate check.
	Check  func(def D, item T, index int) outcome.Validity
	shared Set[T]
}

// NewUnique binds a processor to the shared set. A nil shared set makes
// uniqueness local to each call.
func NewUnique[D any, T comparable](policy Policy, diagnostics UniqueDiagnostics[D], shared Set[T]) *Unique[D, T] {
	if diagnostics == nil {
		panic(errIncomplete)
	}
	if shared == nil {
		shared = Set[T]{}
	}
	return &Unique[D, T]{Policy: policy, Diagnostics: diagnostics, shared: shared}
}

// Shared returns the set accepted items are recorded in.
func (u *Unique[D, T]) Shared() Set[T] {
	return u.shared
}

// Process rejects items already present in the shared set or earlier in
// items. Accepted items are added to the shared set. Null items allowed by
// the policy are skipped without a diagnostic.
func (u *Unique[D, T]) Process(def D, items []*T) outcome.Optional[List[T]] {
	local := Set[T]{}
	upgrade := func(def D, item *T, index int) outcome.Optional[T] {
		// A permitted null carries no value to keep or to reserve.
		if item == nil {
			return outcome.Empty[T]()
		}
		value := *item
		duplicate := u.shared.Has(value) || local.Has(value)
		local.Add(value)

		v := outcome.ConditionalOne(!duplicate, func() *diag.Diagnostic {
			return u.Diagnostics.DuplicateItem(def, index)
		})
		if u.Check != nil {
			v = v.Validate(func() outcome.Validity { return u.Check(def, value, index) })
		}
		if v.IsValid() {
			u.shared.Add(value)
		}
		return outcome.TransformValue(v, value)
	}
	return NewProcessor(u.Policy, Diagnostics[D](u.Diagnostics), upgrade, ProduceList[D, T]).Process(def, items)
}
