package units

import "quantgen/internal/source"

// RawInstance is the part shared by every unit instance declaration.
type RawInstance struct {
	Name   Located[string]
	Plural Located[string]
	Span   source.Span
}

type RawFixed struct {
	RawInstance
}

// RawDerivation declares how instances of the unit are derived from
// instances of the signature's unit types.
type RawDerivation struct {
	ID           Located[string]
	Expression   Located[string]
	Signature    List[string]
	Permutations Located[bool]
	Span         source.Span
}

type RawDerived struct {
	RawInstance
	DerivationID Located[string]
	Units        List[string]
}

type RawAlias struct {
	RawInstance
	AliasOf Located[string]
}

type RawScaled struct {
	RawInstance
	From  Located[string]
	Scale Located[string]
}

type RawPrefixed struct {
	RawInstance
	From         Located[string]
	MetricPrefix Located[string]
	BinaryPrefix Located[string]
}

type RawBiased struct {
	RawInstance
	From Located[string]
	Bias Located[string]
}

// RawUnitType is everything declared on one unit type.
type RawUnitType struct {
	Type        Located[string]
	Quantity    Located[string]
	BiasTerm    Located[bool]
	Fixed       []RawFixed
	Derivations []RawDerivation
	Derived     []RawDerived
	Aliases     []RawAlias
	Scaled      []RawScaled
	Prefixed    []RawPrefixed
	Biased      []RawBiased
	Span        source.Span
}

// RawQuantity is a quantity bound to a unit type, optionally restricting
// which unit instances it exposes.
type RawQuantity struct {
	Type    Located[string]
	Unit    Located[string]
	Include []List[string]
	Exclude []List[string]
	Span    source.Span
}
