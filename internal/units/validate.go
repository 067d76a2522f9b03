package units

import (
	"quantgen/internal/diag"
	"quantgen/internal/outcome"
)

// ValidateUnitType checks the references of u against the population and
// drops every definition whose references do not hold.
func (p *Processor) ValidateUnitType(u UnitType, pop *Population) outcome.Result[UnitType] {
	derivations := outcome.Filter(u.Derivations, func(d Derivation) outcome.Validity {
		out := outcome.Valid()
		for i, element := range d.Signature {
			if _, ok := pop.Lookup(element); !ok {
				out = out.And(outcome.Invalid(diag.Of(p.diags.UnrecognizedUnitType(element, d.SignatureSpans[i]))...))
			}
		}
		return out
	})
	u.Derivations = derivations.Value()

	derived := outcome.Filter(u.Derived, func(d Derived) outcome.Validity {
		return p.validateDerived(&u, d, pop)
	})
	u.Derived = derived.Value()

	dependents := outcome.Filter(u.Dependents, func(d Dependent) outcome.Validity {
		return outcome.ConditionalOne(pop.HasInstance(u.Name, d.DependsOn), func() *diag.Diagnostic {
			return p.diags.UnrecognizedUnitName(d.DependsOn, u.Name, d.DependsOnLocation)
		})
	})
	u.Dependents = dependents.Value()

	return outcome.NewResult(u, derivations.Diagnostics()...).
		AddDiagnostics(derived.Diagnostics()...).
		AddDiagnostics(dependents.Diagnostics()...)
}

func (p *Processor) validateDerived(u *UnitType, d Derived, pop *Population) outcome.Validity {
	var derivation *Derivation
	v := outcome.Valid()
	switch {
	case d.DerivationID != "":
		found, ok := u.derivation(d.DerivationID)
		derivation = found
		v = outcome.ConditionalOne(ok, func() *diag.Diagnostic {
			return p.diags.UnrecognizedDerivationID(d.DerivationID, u.Name, d.IDSpan)
		})
	case len(u.Derivations) == 1:
		derivation = &u.Derivations[0]
	case len(u.Derivations) == 0:
		v = outcome.Invalid(diag.Of(p.diags.UnrecognizedDerivationID("", u.Name, d.Span))...)
	default:
		v = outcome.Invalid(diag.Of(p.diags.AmbiguousDerivation(d.Name, u.Name, d.Span))...)
	}

	return v.Validate(func() outcome.Validity {
		return outcome.ConditionalOne(len(d.Units) == len(derivation.Signature), func() *diag.Diagnostic {
			return p.diags.DerivationArity(d.Name, len(derivation.Signature), len(d.Units), d.Span)
		})
	}).Validate(func() outcome.Validity {
		out := outcome.Valid()
		for i, name := range d.Units {
			unit := derivation.Signature[i]
			if !pop.HasInstance(unit, name) {
				out = out.And(outcome.Invalid(diag.Of(p.diags.UnrecognizedUnitName(name, unit, d.UnitSpans[i]))...))
			}
		}
		return out
	})
}
