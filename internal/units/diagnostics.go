package units

import (
	"fmt"
	"strings"

	"quantgen/internal/diag"
	"quantgen/internal/resolve"
	"quantgen/internal/source"
)

// listDef identifies one list argument for the item-list processors.
type listDef struct {
	owner string
	arg   string
	list  List[string]
}

func (d listDef) item(i int) source.Span {
	return d.list.itemSpan(i)
}

// Diagnostics creates every diagnostic reported while processing unit and
// quantity declarations. It holds configuration only and is safe to share.
type Diagnostics struct {
	// WarningsAsErrors reports warnings with error severity.
	WarningsAsErrors bool
}

// NewDiagnostics returns the diagnostics factory used by processors.
func NewDiagnostics(warningsAsErrors bool) *Diagnostics {
	return &Diagnostics{WarningsAsErrors: warningsAsErrors}
}

func (d *Diagnostics) warn(code diag.Code, sp source.Span, format string, args ...any) *diag.Diagnostic {
	if d.WarningsAsErrors {
		return diag.Errorf(code, sp, format, args...)
	}
	return diag.Warnf(code, sp, format, args...)
}

func (d *Diagnostics) EmptyList(def listDef) *diag.Diagnostic {
	return diag.Errorf(diag.LstEmptyList, def.list.Span, "%s: %q must list at least one item", def.owner, def.arg)
}

func (d *Diagnostics) NullItem(def listDef, index int) *diag.Diagnostic {
	return diag.Errorf(diag.LstNullItem, def.item(index), "%s: item %d of %q is null", def.owner, index, def.arg)
}

func (d *Diagnostics) EffectivelyEmpty(def listDef) *diag.Diagnostic {
	return diag.Errorf(diag.LstEffectivelyEmpty, def.list.Span, "%s: no valid item remains in %q", def.owner, def.arg)
}

func (d *Diagnostics) DuplicateItem(def listDef, index int) *diag.Diagnostic {
	value := ""
	if index < len(def.list.Items) && def.list.Items[index] != nil {
		value = *def.list.Items[index]
	}
	return diag.Errorf(diag.LstDuplicateItem, def.item(index), "%s: %q is already listed", def.owner, value)
}

func (d *Diagnostics) MissingArgument(owner, arg string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.LstMissingArgument, sp, "%s: missing required argument %q", owner, arg)
}

func (d *Diagnostics) EmptyArgument(owner, arg string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.LstEmptyArgument, sp, "%s: argument %q is empty", owner, arg)
}

func (d *Diagnostics) InvalidName(name string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntInvalidName, sp, "%q is not a valid identifier", name)
}

func (d *Diagnostics) InvalidPlural(plural, expanded string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntInvalidPluralForm, sp, "plural form %q expands to %q, which is not a valid identifier", plural, expanded)
}

func (d *Diagnostics) DuplicateInstanceName(unit, name string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntDuplicateInstanceName, sp, "%s already defines a unit instance named %q", unit, name)
}

func (d *Diagnostics) MultipleFixed(unit string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntMultipleFixed, sp, "%s already defines a fixed unit instance", unit)
}

func (d *Diagnostics) UnrecognizedPrefix(system PrefixSystem, name string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntUnrecognizedPrefix, sp, "%q is not a %s prefix", name, system)
}

func (d *Diagnostics) AmbiguousPrefix(name string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntAmbiguousPrefix, sp, "%q specifies both a metric and a binary prefix", name)
}

func (d *Diagnostics) MissingPrefix(name string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.LstMissingArgument, sp, "%q requires either a metric or a binary prefix", name)
}

func (d *Diagnostics) SelfReference(name string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntSelfReference, sp, "%q is defined in terms of itself", name)
}

func (d *Diagnostics) BiasTermMissing(unit, name string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntBiasTermMissing, sp, "%q is biased, but %s does not include a bias term", name, unit)
}

func (d *Diagnostics) BiasTermNotAllowed(unit string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntBiasTermNotAllowed, sp, "%s includes a bias term and cannot be derived", unit)
}

func (d *Diagnostics) DuplicateDerivationID(id string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntDuplicateDerivationID, sp, "derivation ID %q is already used", id)
}

func (d *Diagnostics) DuplicateDerivationSignature(signature []string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntDuplicateDerivationSignature, sp, "a derivation with signature (%s) already exists", strings.Join(signature, ", "))
}

func (d *Diagnostics) MultipleDerivationsWithoutID(unit string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntMultipleDerivationsWithoutID, sp, "%s has several derivations, so each needs an ID", unit)
}

func (d *Diagnostics) InvalidDerivationExpression(expr string, err error, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntInvalidDerivationExpression, sp, "cannot parse %q: %v", expr, err)
}

func (d *Diagnostics) UnmatchedPlaceholder(index, arity int, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntUnmatchedPlaceholder, sp, "{%d} has no matching element in a signature of %d", index, arity)
}

func (d *Diagnostics) UnusedSignatureElement(index int, element string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntUnusedSignatureElement, sp, "signature element %d (%s) is not used: the expression lacks {%d}", index, element, index)
}

func (d *Diagnostics) RedundantPermutations(sp source.Span) *diag.Diagnostic {
	return d.warn(diag.UntRedundantPermutations, sp, "permutations have no effect: the signature has no distinct elements to reorder")
}

func (d *Diagnostics) InvalidScale(expr string, err error, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntInvalidScale, sp, "invalid scale %q: %v", expr, err)
}

func (d *Diagnostics) InvalidBias(expr string, err error, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntInvalidBias, sp, "invalid bias %q: %v", expr, err)
}

func (d *Diagnostics) DerivationArity(name string, want, got int, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntDerivationArity, sp, "%q lists %d units, but the derivation signature has %d", name, got, want)
}

func (d *Diagnostics) AmbiguousDerivation(name, unit string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntAmbiguousDerivation, sp, "%q must name a derivation ID: %s has several derivations", name, unit)
}

func (d *Diagnostics) DuplicateUnitType(name string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntDuplicateUnitType, sp, "unit type %q is declared more than once", name)
}

func (d *Diagnostics) IncludeAndExclude(quantity string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.UntIncludeAndExclude, sp, "%s both includes and excludes unit instances", quantity)
}

func (d *Diagnostics) UnrecognizedUnitName(name, unit string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.RefUnrecognizedUnitName, sp, "%q is not a unit instance of %s", name, unit)
}

func (d *Diagnostics) UnrecognizedDerivationID(id, unit string, sp source.Span) *diag.Diagnostic {
	if id == "" {
		return diag.Errorf(diag.RefUnrecognizedDerivationID, sp, "%s declares no derivation", unit)
	}
	return diag.Errorf(diag.RefUnrecognizedDerivationID, sp, "%s has no derivation with ID %q", unit, id)
}

func (d *Diagnostics) UnrecognizedUnitType(name string, sp source.Span) *diag.Diagnostic {
	return diag.Errorf(diag.RefUnrecognizedUnitType, sp, "%q is not a declared unit type", name)
}

func (d *Diagnostics) CyclicDependency(u resolve.Unresolved) *diag.Diagnostic {
	return diag.Errorf(diag.RefCyclicDependency, u.DependsOnLocation,
		"%s %q depends on %q, which depends back on it", u.Kind, u.Name, u.DependsOn)
}

func (d *Diagnostics) UnresolvedDependency(u resolve.Unresolved) *diag.Diagnostic {
	var why string
	switch u.Cause {
	case resolve.BehindCycle:
		why = fmt.Sprintf("its chain reaches the cycle through %q", u.Root)
	default:
		why = fmt.Sprintf("%q is undefined or was rejected", u.Root)
	}
	return diag.Errorf(diag.RefUnresolvedDependency, u.DependsOnLocation,
		"%s %q depends on %q, which cannot be resolved: %s", u.Kind, u.Name, u.DependsOn, why)
}
