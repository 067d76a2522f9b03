// Package resolve orders dependent unit instances so that every instance
// follows the instance it is defined relative to.
//
// Each dependent names exactly one target, so the input is a functional graph.
// Resolution repeats full passes over the pending entries in declaration
// order until a pass places nothing. Entries placed earlier in a pass are
// visible to later entries of the same pass. Whatever remains is diagnosed
// entry by entry.
package resolve

import (
	"errors"
	"slices"

	"quantgen/internal/diag"
	"quantgen/internal/outcome"
	"quantgen/internal/source"
)

// Kind tells how a dependent instance relates to its target.
type Kind uint8

const (
	Alias Kind = iota + 1
	Scaled
	Prefixed
	Biased
)

func (k Kind) String() string {
	switch k {
	case Alias:
		return "alias"
	case Scaled:
		return "scaled"
	case Prefixed:
		return "prefixed"
	case Biased:
		return "biased"
	}
	return "unknown"
}

// Entry is the kind-independent part of a dependent definition.
type Entry struct {
	Name              string
	DependsOn         string
	Kind              Kind
	Location          source.Span
	DependsOnLocation source.Span
}

// Dependent is an entry plus its kind-specific payload.
type Dependent[P any] struct {
	Entry
	Params P
}

// Cause explains why an entry stayed unresolved.
type Cause uint8

const (
	// InCycle: the entry's target chain leads back to the entry.
	InCycle Cause = iota + 1
	// BehindCycle: the chain reaches a cycle the entry is not part of.
	BehindCycle
	// Undefined: the chain ends at a name nobody defines.
	Undefined
)

// Unresolved describes a remaining entry and where its chain stopped.
type Unresolved struct {
	Entry
	Cause Cause
	// Root is the undefined name, the entry's own target when it is on a
	// cycle, or the first cycle member reached otherwise.
	Root string
}

// Diagnostics creates the cross-reference diagnostics. Returning nil suppresses one.
type Diagnostics interface {
	CyclicDependency(u Unresolved) *diag.Diagnostic
	UnresolvedDependency(u Unresolved) *diag.Diagnostic
}

// Resolution is the emission order plus the entries that could not be placed,
// both in declaration order relative to their own pass.
type Resolution[P any] struct {
	Order      []Dependent[P]
	Unresolved []Dependent[P]
	Passes     int
}

// Resolver orders dependents carrying payloads of type P. It holds no state
// between calls.
type Resolver[P any] struct {
	diagnostics Diagnostics
}

// NewResolver panics when d is nil.
func NewResolver[P any](d Diagnostics) *Resolver[P] {
	if d == nil {
		panic(errors.New("resolve: nil Diagnostics"))
	}
	return &Resolver[P]{diagnostics: d}
}

// Resolve places dependents after their targets. resolved seeds the set of
// names that already exist (fixed and derived instances). The whole worklist
// is drained before returning.
func (r *Resolver[P]) Resolve(resolved []string, dependents []Dependent[P]) outcome.Result[Resolution[P]] {
	known := make(map[string]struct{}, len(resolved)+len(dependents))
	for _, name := range resolved {
		known[name] = struct{}{}
	}

	pending := slices.Clone(dependents)
	res := Resolution[P]{Order: make([]Dependent[P], 0, len(dependents))}
	for len(pending) > 0 {
		res.Passes++
		kept := pending[:0]
		for _, dep := range pending {
			if _, ok := known[dep.DependsOn]; ok {
				res.Order = append(res.Order, dep)
				known[dep.Name] = struct{}{}
				continue
			}
			kept = append(kept, dep)
		}
		progressed := len(kept) < len(pending)
		pending = kept
		if !progressed {
			break
		}
	}

	if len(pending) == 0 {
		return outcome.NewResult(res)
	}
	res.Unresolved = pending

	ds := make([]*diag.Diagnostic, 0, len(pending))
	for _, u := range classify(pending) {
		if u.Cause == InCycle {
			ds = append(ds, r.diagnostics.CyclicDependency(u))
		} else {
			ds = append(ds, r.diagnostics.UnresolvedDependency(u))
		}
	}
	return outcome.NewResult(res, diag.Of(ds...)...)
}

// classify follows each remaining entry's chain through the other remaining
// entries. Duplicate names resolve to the first declaration.
func classify[P any](pending []Dependent[P]) []Unresolved {
	byName := make(map[string]int, len(pending))
	for i, dep := range pending {
		if _, dup := byName[dep.Name]; !dup {
			byName[dep.Name] = i
		}
	}

	out := make([]Unresolved, 0, len(pending))
	for i, dep := range pending {
		u := Unresolved{Entry: dep.Entry}
		visited := map[int]struct{}{i: {}}
		cur := i
		for {
			target := pending[cur].DependsOn
			next, ok := byName[target]
			if !ok {
				u.Cause, u.Root = Undefined, target
				break
			}
			if _, seen := visited[next]; seen {
				if next == i {
					u.Cause, u.Root = InCycle, dep.DependsOn
				} else {
					u.Cause, u.Root = BehindCycle, pending[next].Name
				}
				break
			}
			visited[next] = struct{}{}
			cur = next
		}
		out = append(out, u)
	}
	return out
}
