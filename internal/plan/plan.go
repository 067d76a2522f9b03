// Package plan turns a run result into the ordered list of definitions an
// emitter writes out.
package plan

import (
	"quantgen/internal/driver"
	"quantgen/internal/resolve"
	"quantgen/internal/units"
)

// Kind names how an instance is rendered.
type Kind string

const (
	KindFixed    Kind = "fixed"
	KindDerived  Kind = "derived"
	KindAlias    Kind = "alias"
	KindScaled   Kind = "scaled"
	KindPrefixed Kind = "prefixed"
	KindBiased   Kind = "biased"
)

// Plan lists unit types and quantities in declaration order.
type Plan struct {
	Project    string         `json:"project" msgpack:"project" toml:"project"`
	Units      []UnitPlan     `json:"units" msgpack:"units" toml:"units"`
	Quantities []QuantityPlan `json:"quantities" msgpack:"quantities" toml:"quantities"`
}

// UnitPlan holds the instances of one unit type in emission order: the fixed
// instance, derived instances, then dependents in resolved order.
type UnitPlan struct {
	Type        string           `json:"type" msgpack:"type" toml:"type"`
	Quantity    string           `json:"quantity,omitempty" msgpack:"quantity,omitempty" toml:"quantity,omitempty"`
	BiasTerm    bool             `json:"bias_term,omitempty" msgpack:"bias_term,omitempty" toml:"bias_term,omitempty"`
	Derivations []DerivationPlan `json:"derivations,omitempty" msgpack:"derivations,omitempty" toml:"derivations,omitempty"`
	Instances   []InstancePlan   `json:"instances" msgpack:"instances" toml:"instances"`
}

type DerivationPlan struct {
	ID           string   `json:"id,omitempty" msgpack:"id,omitempty" toml:"id,omitempty"`
	Expression   string   `json:"expression" msgpack:"expression" toml:"expression"`
	Signature    []string `json:"signature" msgpack:"signature" toml:"signature"`
	Permutations bool     `json:"permutations,omitempty" msgpack:"permutations,omitempty" toml:"permutations,omitempty"`
}

type InstancePlan struct {
	Name      string    `json:"name" msgpack:"name" toml:"name"`
	Plural    string    `json:"plural" msgpack:"plural" toml:"plural"`
	Rendering Rendering `json:"rendering" msgpack:"rendering" toml:"rendering"`
}

// Rendering describes how an instance is defined, independent of any target
// language. Only the fields of its Kind are set.
type Rendering struct {
	Kind Kind `json:"kind" msgpack:"kind" toml:"kind"`
	// From is the target of dependent instances.
	From string `json:"from,omitempty" msgpack:"from,omitempty" toml:"from,omitempty"`

	Scale     float64 `json:"scale,omitempty" msgpack:"scale,omitempty" toml:"scale,omitempty"`
	ScaleExpr string  `json:"scale_expr,omitempty" msgpack:"scale_expr,omitempty" toml:"scale_expr,omitempty"`

	Prefix       string  `json:"prefix,omitempty" msgpack:"prefix,omitempty" toml:"prefix,omitempty"`
	PrefixSystem string  `json:"prefix_system,omitempty" msgpack:"prefix_system,omitempty" toml:"prefix_system,omitempty"`
	Factor       float64 `json:"factor,omitempty" msgpack:"factor,omitempty" toml:"factor,omitempty"`

	Bias     float64 `json:"bias,omitempty" msgpack:"bias,omitempty" toml:"bias,omitempty"`
	BiasExpr string  `json:"bias_expr,omitempty" msgpack:"bias_expr,omitempty" toml:"bias_expr,omitempty"`

	Derivation string   `json:"derivation,omitempty" msgpack:"derivation,omitempty" toml:"derivation,omitempty"`
	Units      []string `json:"units,omitempty" msgpack:"units,omitempty" toml:"units,omitempty"`
	// Expression is the derivation expression with the units substituted.
	Expression string `json:"expression,omitempty" msgpack:"expression,omitempty" toml:"expression,omitempty"`
}

type QuantityPlan struct {
	Name      string   `json:"name" msgpack:"name" toml:"name"`
	Unit      string   `json:"unit" msgpack:"unit" toml:"unit"`
	Instances []string `json:"instances" msgpack:"instances" toml:"instances"`
}

// Build assembles the plan of res. Unresolved dependents are left out; they
// have already been reported.
func Build(project string, res *driver.Result) *Plan {
	p := &Plan{
		Project:    project,
		Units:      make([]UnitPlan, 0, len(res.Units)),
		Quantities: make([]QuantityPlan, 0, len(res.Quantities)),
	}
	for _, t := range res.Units {
		p.Units = append(p.Units, unitPlan(t))
	}
	for _, q := range res.Quantities {
		p.Quantities = append(p.Quantities, QuantityPlan{Name: q.Name, Unit: q.Unit, Instances: q.Instances})
	}
	return p
}

func unitPlan(t driver.TypeResult) UnitPlan {
	u := t.Unit
	out := UnitPlan{
		Type:     u.Name,
		Quantity: u.Quantity,
		BiasTerm: u.BiasTerm,
	}
	for _, d := range u.Derivations {
		out.Derivations = append(out.Derivations, DerivationPlan{
			ID:           d.ID,
			Expression:   d.Expression.String(),
			Signature:    d.Signature,
			Permutations: d.Permutations,
		})
	}
	if u.Fixed != nil {
		out.Instances = append(out.Instances, InstancePlan{
			Name:      u.Fixed.Name,
			Plural:    u.Fixed.Plural,
			Rendering: Rendering{Kind: KindFixed},
		})
	}
	for _, d := range u.Derived {
		out.Instances = append(out.Instances, derivedPlan(&u, d))
	}
	for _, d := range t.Resolution.Order {
		out.Instances = append(out.Instances, InstancePlan{
			Name:      d.Name,
			Plural:    d.Params.Plural,
			Rendering: dependentRendering(d),
		})
	}
	return out
}

func derivedPlan(u *units.UnitType, d units.Derived) InstancePlan {
	r := Rendering{Kind: KindDerived, Derivation: d.DerivationID, Units: d.Units}
	for _, derivation := range u.Derivations {
		if derivation.ID == d.DerivationID || (d.DerivationID == "" && len(u.Derivations) == 1) {
			r.Derivation = derivation.ID
			r.Expression = derivation.Expression.Render(d.Units)
			break
		}
	}
	return InstancePlan{Name: d.Name, Plural: d.Plural, Rendering: r}
}

func dependentRendering(d units.Dependent) Rendering {
	r := Rendering{From: d.DependsOn}
	switch d.Kind {
	case resolve.Alias:
		r.Kind = KindAlias
	case resolve.Scaled:
		r.Kind = KindScaled
		r.Scale, r.ScaleExpr = d.Params.Scale, d.Params.ScaleExpr
	case resolve.Prefixed:
		r.Kind = KindPrefixed
		r.Prefix = d.Params.Prefix.Name
		r.PrefixSystem = d.Params.Prefix.System.String()
		r.Factor = d.Params.Prefix.Factor
	case resolve.Biased:
		r.Kind = KindBiased
		r.Bias, r.BiasExpr = d.Params.Bias, d.Params.BiasExpr
	}
	return r
}
