package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quantgen/internal/diag"
	"quantgen/internal/resolve"
	"quantgen/internal/source"
)

var nextOffset uint32

// str places every value at its own span so diagnostics can be told apart.
func str(v string) Located[string] {
	nextOffset += 10
	return At(v, source.Span{Start: nextOffset, End: nextOffset + uint32(len(v))})
}

func sp(v string) *string { return &v }

func head(name string) RawInstance {
	return RawInstance{Name: str(name)}
}

func codes(ds []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, len(ds))
	for i := range ds {
		out[i] = ds[i].Code
	}
	return out
}

func depNames(ds []Dependent) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Name
	}
	return out
}

func newProcessor() *Processor {
	return NewProcessor(NewDiagnostics(false))
}

func length() RawUnitType {
	return RawUnitType{
		Type:    str("UnitOfLength"),
		Fixed:   []RawFixed{{RawInstance: head("Metre")}},
		Aliases: []RawAlias{{RawInstance: head("Meter"), AliasOf: str("Metre")}},
		Scaled: []RawScaled{
			{RawInstance: head("Kilometre"), From: str("Metre"), Scale: str("1000")},
			{RawInstance: head("Foot"), From: str("Metre"), Scale: str("0.3048")},
		},
		Prefixed: []RawPrefixed{
			{RawInstance: head("Millimetre"), From: str("Metre"), MetricPrefix: str("Milli")},
		},
	}
}

func TestProcessUnitTypeRoundTrip(t *testing.T) {
	p := newProcessor()

	o := p.ProcessUnitType(length())
	require.True(t, o.HasResult())
	assert.Empty(t, o.Diagnostics())
	u := o.MustGet()

	assert.Equal(t, "Metre", u.Fixed.Name)
	assert.Equal(t, "Metres", u.Fixed.Plural)
	assert.Equal(t, []string{"Meter", "Millimetre", "Kilometre", "Foot"}, depNames(u.Dependents))
	assert.Equal(t, 1000.0, u.Dependents[2].Params.Scale)
	assert.Equal(t, 1e-3, u.Dependents[1].Params.Prefix.Factor)

	pop := p.BuildPopulation([]UnitType{u}).Value()
	v := p.ValidateUnitType(u, pop)
	assert.Empty(t, v.Diagnostics())

	r := p.Resolve(v.Value())
	assert.Empty(t, r.Diagnostics())
	assert.Equal(t, []string{"Meter", "Millimetre", "Kilometre", "Foot"}, depNames(r.Value().Order))
}

func TestHeaderFailureDropsType(t *testing.T) {
	p := newProcessor()

	missing := p.ProcessUnitType(RawUnitType{})
	assert.False(t, missing.HasResult())
	assert.Equal(t, []diag.Code{diag.LstMissingArgument}, codes(missing.Diagnostics()))

	invalid := p.ProcessUnitType(RawUnitType{Type: str("Unit Of Length")})
	assert.False(t, invalid.HasResult())
	assert.Equal(t, []diag.Code{diag.UntInvalidName}, codes(invalid.Diagnostics()))
}

func TestInstanceNameChecks(t *testing.T) {
	raw := RawUnitType{
		Type: str("UnitOfLength"),
		Fixed: []RawFixed{
			{RawInstance: head("Metre")},
			{RawInstance: head("Other")},
		},
		Aliases: []RawAlias{
			{RawInstance: head("Metre"), AliasOf: str("Metre")},
			{RawInstance: RawInstance{Name: str("Foot"), Plural: str("Fe et")}, AliasOf: str("Metre")},
			{RawInstance: RawInstance{Name: str("Inch"), Plural: str("{0}es")}, AliasOf: str("Metre")},
			{RawInstance: head("1x"), AliasOf: str("Metre")},
			{RawInstance: RawInstance{}, AliasOf: str("Metre")},
		},
	}

	o := newProcessor().ProcessUnitType(raw)
	require.True(t, o.HasResult())
	assert.Equal(t, []diag.Code{
		diag.UntMultipleFixed,
		diag.UntDuplicateInstanceName,
		diag.UntInvalidPluralForm,
		diag.UntInvalidName,
		diag.LstMissingArgument,
	}, codes(o.Diagnostics()))
	u := o.MustGet()
	require.Len(t, u.Dependents, 1)
	assert.Equal(t, "Inches", u.Dependents[0].Params.Plural)
}

func TestSelfReferenceIsDropped(t *testing.T) {
	raw := RawUnitType{
		Type:    str("UnitOfLength"),
		Fixed:   []RawFixed{{RawInstance: head("Metre")}},
		Aliases: []RawAlias{{RawInstance: head("Loop"), AliasOf: str("Loop")}},
	}

	o := newProcessor().ProcessUnitType(raw)
	assert.Equal(t, []diag.Code{diag.UntSelfReference}, codes(o.Diagnostics()))
	assert.Empty(t, o.MustGet().Dependents)
}

func TestScaledAndBiasedChecks(t *testing.T) {
	raw := RawUnitType{
		Type:  str("UnitOfTemperature"),
		Fixed: []RawFixed{{RawInstance: head("Kelvin")}},
		Scaled: []RawScaled{
			{RawInstance: head("Broken"), From: str("Kelvin"), Scale: str("1 +")},
			{RawInstance: head("Nothing"), From: str("Kelvin"), Scale: str("0")},
			{RawInstance: head("Word"), From: str("Kelvin"), Scale: str(`"x"`)},
			{RawInstance: head("NoScale"), From: str("Kelvin")},
		},
		Biased: []RawBiased{{RawInstance: head("Celsius"), From: str("Kelvin"), Bias: str("273.15")}},
	}

	o := newProcessor().ProcessUnitType(raw)
	assert.Equal(t, []diag.Code{
		diag.UntBiasTermMissing,
		diag.UntInvalidScale,
		diag.UntInvalidScale,
		diag.UntInvalidScale,
		diag.LstMissingArgument,
	}, codes(o.Diagnostics()))
	assert.Empty(t, o.MustGet().Dependents)

	raw.BiasTerm = At(true, source.Span{})
	raw.Scaled = nil
	o = newProcessor().ProcessUnitType(raw)
	assert.Empty(t, o.Diagnostics())
	deps := o.MustGet().Dependents
	require.Len(t, deps, 1)
	assert.Equal(t, resolve.Biased, deps[0].Kind)
	assert.InDelta(t, 273.15, deps[0].Params.Bias, 1e-9)
}

func TestPrefixChecks(t *testing.T) {
	raw := RawUnitType{
		Type:  str("UnitOfInformation"),
		Fixed: []RawFixed{{RawInstance: head("Byte")}},
		Prefixed: []RawPrefixed{
			{RawInstance: head("Kibibyte"), From: str("Byte"), BinaryPrefix: str("Kibi")},
			{RawInstance: head("Both"), From: str("Byte"), MetricPrefix: str("Kilo"), BinaryPrefix: str("Kibi")},
			{RawInstance: head("Neither"), From: str("Byte")},
			{RawInstance: head("Wrong"), From: str("Byte"), MetricPrefix: str("Kibi")},
		},
	}

	o := newProcessor().ProcessUnitType(raw)
	assert.Equal(t, []diag.Code{
		diag.UntAmbiguousPrefix,
		diag.LstMissingArgument,
		diag.UntUnrecognizedPrefix,
	}, codes(o.Diagnostics()))
	deps := o.MustGet().Dependents
	require.Len(t, deps, 1)
	assert.Equal(t, Binary, deps[0].Params.Prefix.System)
	assert.Equal(t, 1024.0, deps[0].Params.Prefix.Factor)
}

func TestFailedInstanceDoesNotReserveName(t *testing.T) {
	raw := RawUnitType{
		Type:  str("UnitOfLength"),
		Fixed: []RawFixed{{RawInstance: head("Metre")}},
		Aliases: []RawAlias{
			{RawInstance: head("Meter")},
			{RawInstance: head("Meter"), AliasOf: str("Metre")},
		},
	}

	o := newProcessor().ProcessUnitType(raw)
	assert.Equal(t, []diag.Code{diag.LstMissingArgument}, codes(o.Diagnostics()))
	assert.Equal(t, []string{"Meter"}, depNames(o.MustGet().Dependents))
}

func TestDependentTargetMustExist(t *testing.T) {
	p := newProcessor()
	raw := length()
	raw.Aliases = append(raw.Aliases, RawAlias{RawInstance: head("Yard"), AliasOf: str("Nope")})
	u := p.ProcessUnitType(raw).MustGet()
	pop := p.BuildPopulation([]UnitType{u}).Value()

	v := p.ValidateUnitType(u, pop)

	assert.Equal(t, []diag.Code{diag.RefUnrecognizedUnitName}, codes(v.Diagnostics()))
	assert.NotContains(t, depNames(v.Value().Dependents), "Yard")
}

func TestCycleAcrossDependents(t *testing.T) {
	p := newProcessor()
	raw := RawUnitType{
		Type:  str("UnitOfLength"),
		Fixed: []RawFixed{{RawInstance: head("Metre")}},
		Aliases: []RawAlias{
			{RawInstance: head("A"), AliasOf: str("B")},
			{RawInstance: head("B"), AliasOf: str("A")},
		},
	}
	u := p.ProcessUnitType(raw).MustGet()
	pop := p.BuildPopulation([]UnitType{u}).Value()
	v := p.ValidateUnitType(u, pop)
	require.Empty(t, v.Diagnostics())

	r := p.Resolve(v.Value())

	assert.Empty(t, r.Value().Order)
	assert.Equal(t, []diag.Code{diag.RefCyclicDependency, diag.RefCyclicDependency}, codes(r.Diagnostics()))
}

func TestBuildPopulationRejectsDuplicateTypes(t *testing.T) {
	p := newProcessor()
	a := p.ProcessUnitType(length()).MustGet()
	b := p.ProcessUnitType(RawUnitType{Type: str("UnitOfLength")}).MustGet()

	r := p.BuildPopulation([]UnitType{a, b})

	assert.Equal(t, []diag.Code{diag.UntDuplicateUnitType}, codes(r.Diagnostics()))
	require.Len(t, r.Value().Units(), 1)
	assert.True(t, r.Value().HasInstance("UnitOfLength", "Kilometre"))
}

func TestEvaluate(t *testing.T) {
	v, err := Evaluate("1 / 4")
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)

	v, err = Evaluate("2 * pi")
	require.NoError(t, err)
	assert.InDelta(t, 6.283185, v, 1e-6)

	_, err = Evaluate("1 / 0")
	assert.Error(t, err)
	_, err = Evaluate("true")
	assert.ErrorIs(t, err, errNotNumeric)
}

func TestLookupPrefix(t *testing.T) {
	p, ok := LookupPrefix(Metric, "Kilo")
	require.True(t, ok)
	assert.Equal(t, 1000.0, p.Factor)

	_, ok = LookupPrefix(Binary, "Kilo")
	assert.False(t, ok)
}

func TestWarningsAsErrors(t *testing.T) {
	d := NewDiagnostics(true).RedundantPermutations(source.Span{})
	assert.Equal(t, diag.SevError, d.Severity)
	assert.Equal(t, diag.SevWarning, NewDiagnostics(false).RedundantPermutations(source.Span{}).Severity)
}

func TestNewProcessorPanicsWithoutDiagnostics(t *testing.T) {
	assert.Panics(t, func() { NewProcessor(nil) })
}

func TestExpandPlural(t *testing.T) {
	assert.Equal(t, "Metres", ExpandPlural(DefaultPlural, "Metre"))
	assert.Equal(t, "Feet", ExpandPlural("Feet", "Foot"))
}

func derivation(id, expression string, permutations bool, signature ...string) RawDerivation {
	items := make([]*string, len(signature))
	for i := range signature {
		items[i] = sp(signature[i])
	}
	d := RawDerivation{Expression: str(expression), Signature: ListOf(source.Span{}, items...)}
	if id != "" {
		d.ID = str(id)
	}
	if permutations {
		d.Permutations = At(true, source.Span{})
	}
	return d
}

func derivedOf(name, id string, units ...string) RawDerived {
	items := make([]*string, len(units))
	for i := range units {
		items[i] = sp(units[i])
	}
	d := RawDerived{RawInstance: head(name), Units: ListOf(source.Span{}, items...)}
	if id != "" {
		d.DerivationID = str(id)
	}
	return d
}

func TestDerivationChecks(t *testing.T) {
	raw := RawUnitType{
		Type: str("UnitOfArea"),
		Derivations: []RawDerivation{
			derivation("Square", "{0} * {1}", true, "UnitOfLength", "UnitOfLength"),
			derivation("Gap", "{0} * {2}", false, "UnitOfLength", "UnitOfLength"),
			derivation("Half", "{0}", false, "UnitOfLength", "UnitOfLength"),
			derivation("", "{0} * {1}", false, "UnitOfLength", "UnitOfLength"),
			derivation("Square", "{0} * {1}", false, "UnitOfLength", "UnitOfLength"),
			derivation("Again", "{1} * {0}", false, "UnitOfLength", "UnitOfLength"),
			derivation("Broken", "{0} +", false, "UnitOfLength"),
		},
	}

	o := newProcessor().ProcessUnitType(raw)

	require.True(t, o.HasResult())
	assert.Equal(t, []diag.Code{
		diag.UntRedundantPermutations,
		diag.UntUnmatchedPlaceholder,
		diag.UntUnusedSignatureElement,
		diag.UntMultipleDerivationsWithoutID,
		diag.UntDuplicateDerivationID,
		diag.UntDuplicateDerivationSignature,
		diag.UntInvalidDerivationExpression,
	}, codes(o.Diagnostics()))
	assert.Equal(t, diag.SevWarning, o.Diagnostics()[0].Severity)
	require.Len(t, o.MustGet().Derivations, 1)
	assert.Equal(t, "Square", o.MustGet().Derivations[0].ID)
}

func TestBiasedUnitCannotBeDerived(t *testing.T) {
	raw := RawUnitType{
		Type:        str("UnitOfTemperature"),
		BiasTerm:    At(true, source.Span{}),
		Derivations: []RawDerivation{derivation("", "{0}", false, "UnitOfLength")},
	}

	o := newProcessor().ProcessUnitType(raw)

	assert.Equal(t, []diag.Code{diag.UntBiasTermNotAllowed}, codes(o.Diagnostics()))
	assert.Empty(t, o.MustGet().Derivations)
}

func TestDerivedValidation(t *testing.T) {
	p := newProcessor()
	area := RawUnitType{
		Type: str("UnitOfArea"),
		Derivations: []RawDerivation{
			derivation("Square", "{0} * {1}", false, "UnitOfLength", "UnitOfLength"),
			derivation("Strip", "{0} * {1}", false, "UnitOfLength", "UnitOfVolume"),
		},
		Derived: []RawDerived{
			derivedOf("SquareMetre", "Square", "Metre", "Metre"),
			derivedOf("Missing", "Round", "Metre", "Metre"),
			derivedOf("Short", "Square", "Metre"),
			derivedOf("Far", "Square", "Metre", "Parsec"),
			derivedOf("Vague", "", "Metre", "Metre"),
		},
	}
	length := p.ProcessUnitType(length()).MustGet()
	processed := p.ProcessUnitType(area)
	require.Empty(t, processed.Diagnostics())
	pop := p.BuildPopulation([]UnitType{length, processed.MustGet()}).Value()

	v := p.ValidateUnitType(processed.MustGet(), pop)

	u := v.Value()
	require.Len(t, u.Derivations, 1)

	// The Strip derivation is gone, so Vague now falls back to the single
	// remaining derivation.
	names := make([]string, len(u.Derived))
	for i, d := range u.Derived {
		names[i] = d.Name
	}
	assert.Equal(t, []string{"SquareMetre", "Vague"}, names)
	assert.Equal(t, []diag.Code{
		diag.RefUnrecognizedUnitType,
		diag.RefUnrecognizedDerivationID,
		diag.UntDerivationArity,
		diag.RefUnrecognizedUnitName,
	}, codes(v.Diagnostics()))
}

func TestDerivedRequiresUnits(t *testing.T) {
	raw := RawUnitType{
		Type:    str("UnitOfArea"),
		Derived: []RawDerived{{RawInstance: head("Bare")}, derivedOf("Blank", "")},
	}

	o := newProcessor().ProcessUnitType(raw)

	assert.Equal(t, []diag.Code{diag.LstMissingArgument, diag.LstEmptyList}, codes(o.Diagnostics()))
	assert.Empty(t, o.MustGet().Derived)
}

func names(vs ...string) List[string] {
	items := make([]*string, len(vs))
	for i := range vs {
		items[i] = sp(vs[i])
	}
	return ListOf(source.Span{}, items...)
}

func TestProcessQuantity(t *testing.T) {
	p := newProcessor()
	pop := p.BuildPopulation([]UnitType{p.ProcessUnitType(length()).MustGet()}).Value()

	t.Run("include", func(t *testing.T) {
		o := p.ProcessQuantity(RawQuantity{
			Type:    str("Length"),
			Unit:    str("UnitOfLength"),
			Include: []List[string]{names("Metre", "Kilometre", "Parsec"), names("Metre")},
		}, pop)
		require.True(t, o.HasResult())
		// The second list holds only a duplicate, so it is also effectively empty.
		assert.Equal(t, []diag.Code{diag.RefUnrecognizedUnitName, diag.LstDuplicateItem, diag.LstEffectivelyEmpty}, codes(o.Diagnostics()))
		assert.Equal(t, []string{"Metre", "Kilometre"}, o.MustGet().Instances)
	})

	t.Run("exclude", func(t *testing.T) {
		o := p.ProcessQuantity(RawQuantity{
			Type:    str("Length"),
			Unit:    str("UnitOfLength"),
			Exclude: []List[string]{names("Foot", "Meter")},
		}, pop)
		assert.Empty(t, o.Diagnostics())
		assert.Equal(t, []string{"Metre", "Millimetre", "Kilometre"}, o.MustGet().Instances)
	})

	t.Run("both", func(t *testing.T) {
		o := p.ProcessQuantity(RawQuantity{
			Type:    str("Length"),
			Unit:    str("UnitOfLength"),
			Include: []List[string]{names("Metre")},
			Exclude: []List[string]{names("Foot")},
		}, pop)
		assert.False(t, o.HasResult())
		assert.Equal(t, []diag.Code{diag.UntIncludeAndExclude}, codes(o.Diagnostics()))
	})

	t.Run("unknown unit", func(t *testing.T) {
		o := p.ProcessQuantity(RawQuantity{Type: str("Length"), Unit: str("UnitOfNothing")}, pop)
		assert.False(t, o.HasResult())
		assert.Equal(t, []diag.Code{diag.RefUnrecognizedUnitType}, codes(o.Diagnostics()))
	})
}
