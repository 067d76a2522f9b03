package units

import (
	"quantgen/internal/diag"
	"quantgen/internal/itemlist"
	"quantgen/internal/outcome"
	"quantgen/internal/resolve"
)

// ProcessUnitType validates every declaration of one unit type in isolation.
// The result is absent only when the type itself is unusable; malformed
// instances and derivations are dropped with their diagnostics.
//
// Instances are processed as fixed, derived, aliases, biased, prefixed and
// scaled, each in declaration order, which is also the order dependents are
// handed to the resolver.
func (p *Processor) ProcessUnitType(raw RawUnitType) outcome.Optional[UnitType] {
	c := &typeContext{diags: p.diags, names: itemlist.Set[string]{}}
	header := c.require("unit type", "type", raw.Type, raw.Span).Validate(func(name string) outcome.Validity {
		return outcome.ConditionalOne(isIdentifier(name), func() *diag.Diagnostic {
			return p.diags.InvalidName(name, raw.Type.Span)
		})
	})

	return outcome.Then(header, func(name string) outcome.Optional[UnitType] {
		c.unit = name
		c.biasTerm = raw.BiasTerm.Get()
		c.multipleDerivations = len(raw.Derivations) > 1
		c.derivationIDs = itemlist.Set[string]{}
		c.signatures = itemlist.Set[string]{}

		u := UnitType{
			Name:     name,
			Quantity: raw.Quantity.Get(),
			BiasTerm: c.biasTerm,
			Span:     raw.Span,
		}
		acc := outcome.Valid()

		for _, f := range raw.Fixed {
			if u.Fixed != nil {
				acc = acc.AddDiagnostics(diag.Of(p.diags.MultipleFixed(name, f.Span))...)
				continue
			}
			o := c.fixed(f)
			acc = acc.AddDiagnostics(o.Diagnostics()...)
			if v, ok := o.Get(); ok {
				u.Fixed = &v
			}
		}

		derivations := outcome.Collect(raw.Derivations, c.derivation)
		u.Derivations = derivations.Value()
		derived := outcome.Collect(raw.Derived, c.derived)
		u.Derived = derived.Value()
		acc = acc.AddDiagnostics(derivations.Diagnostics()...).AddDiagnostics(derived.Diagnostics()...)

		dependents := []outcome.Result[[]Dependent]{
			outcome.Collect(raw.Aliases, c.alias),
			outcome.Collect(raw.Biased, c.biased),
			outcome.Collect(raw.Prefixed, c.prefixed),
			outcome.Collect(raw.Scaled, c.scaled),
		}
		for _, r := range dependents {
			u.Dependents = append(u.Dependents, r.Value()...)
			acc = acc.AddDiagnostics(r.Diagnostics()...)
		}

		return outcome.TransformValue(acc, u)
	})
}

// Resolve orders the dependents of a validated unit type. It always drains
// the whole worklist.
func (p *Processor) Resolve(u UnitType) outcome.Result[resolve.Resolution[Params]] {
	return resolve.NewResolver[Params](p.diags).Resolve(u.SeedNames(), u.Dependents)
}
