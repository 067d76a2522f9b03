package units

import (
	"quantgen/internal/derivexpr"
	"quantgen/internal/resolve"
	"quantgen/internal/source"
)

// Instance is a validated unit instance head.
type Instance struct {
	Name     string
	Plural   string
	Span     source.Span
	NameSpan source.Span
}

type Fixed struct {
	Instance
}

type Derivation struct {
	ID             string
	Expression     *derivexpr.Expression
	Signature      []string
	SignatureSpans []source.Span
	Permutations   bool
	Span           source.Span
}

type Derived struct {
	Instance
	DerivationID string
	Units        []string
	UnitSpans    []source.Span
	IDSpan       source.Span
}

// Params is the kind-specific payload of a dependent instance.
type Params struct {
	Plural string
	// Scale is set for scaled instances.
	Scale     float64
	ScaleExpr string
	// Prefix is set for prefixed instances.
	Prefix Prefix
	// Bias is set for biased instances.
	Bias     float64
	BiasExpr string
}

// Dependent is a unit instance defined relative to another instance.
type Dependent = resolve.Dependent[Params]

// UnitType is a processed unit type. After validation Dependents holds only
// entries whose targets exist; their order is the resolver input order.
type UnitType struct {
	Name        string
	Quantity    string
	BiasTerm    bool
	Fixed       *Fixed
	Derivations []Derivation
	Derived     []Derived
	Dependents  []Dependent
	Span        source.Span
}

// SeedNames are the instances that exist without depending on other instances.
func (u *UnitType) SeedNames() []string {
	out := make([]string, 0, 1+len(u.Derived))
	if u.Fixed != nil {
		out = append(out, u.Fixed.Name)
	}
	for _, d := range u.Derived {
		out = append(out, d.Name)
	}
	return out
}

// InstanceNames lists every instance name in declaration order.
func (u *UnitType) InstanceNames() []string {
	out := u.SeedNames()
	for _, d := range u.Dependents {
		out = append(out, d.Name)
	}
	return out
}

func (u *UnitType) derivation(id string) (*Derivation, bool) {
	for i := range u.Derivations {
		if u.Derivations[i].ID == id {
			return &u.Derivations[i], true
		}
	}
	return nil, false
}

// Quantity is a processed quantity with its effective unit instances.
type Quantity struct {
	Name      string
	Unit      string
	Included  []string
	Excluded  []string
	Instances []string
	Span      source.Span
}
