package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Structural: list attributes and required arguments.
	LstInfo             Code = 1000
	LstEmptyList        Code = 1001
	LstNullItem         Code = 1002
	LstEffectivelyEmpty Code = 1003
	LstDuplicateItem    Code = 1004
	LstMissingArgument  Code = 1005
	LstEmptyArgument    Code = 1006

	// Semantic: a single definition is malformed.
	UntInfo                         Code = 2000
	UntInvalidName                  Code = 2001
	UntInvalidPluralForm            Code = 2002
	UntDuplicateInstanceName        Code = 2003
	UntUnrecognizedPrefix           Code = 2004
	UntAmbiguousPrefix              Code = 2005
	UntSelfReference                Code = 2006
	UntBiasTermMissing              Code = 2007
	UntBiasTermNotAllowed           Code = 2008
	UntDuplicateDerivationID        Code = 2009
	UntDuplicateDerivationSignature Code = 2010
	UntMultipleDerivationsWithoutID Code = 2011
	UntInvalidDerivationExpression  Code = 2012
	UntUnmatchedPlaceholder         Code = 2013
	UntUnusedSignatureElement       Code = 2014
	UntRedundantPermutations        Code = 2015
	UntInvalidScale                 Code = 2016
	UntInvalidBias                  Code = 2017
	UntDerivationArity              Code = 2018
	UntMultipleFixed                Code = 2019
	UntDuplicateUnitType            Code = 2020
	UntIncludeAndExclude            Code = 2021
	UntAmbiguousDerivation          Code = 2022

	// Cross-reference: detected once every direct definition is known.
	RefInfo                     Code = 3000
	RefUnrecognizedUnitName     Code = 3001
	RefUnrecognizedDerivationID Code = 3002
	RefUnrecognizedUnitType     Code = 3003
	RefCyclicDependency         Code = 3004
	RefUnresolvedDependency     Code = 3005

	// Declaration documents.
	IOInfo           Code = 4000
	IOLoadFileError  Code = 4001
	IODeclSyntax     Code = 4002
	IODeclUnknownKey Code = 4003
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                     "Unknown error",
		LstInfo:                         "List information",
		LstEmptyList:                    "List is empty",
		LstNullItem:                     "List contains a null item",
		LstEffectivelyEmpty:             "List is empty after removing invalid items",
		LstDuplicateItem:                "Item is listed more than once",
		LstMissingArgument:              "Required argument is missing",
		LstEmptyArgument:                "Required argument is empty",
		UntInfo:                         "Unit information",
		UntInvalidName:                  "Invalid unit instance name",
		UntInvalidPluralForm:            "Invalid plural form",
		UntDuplicateInstanceName:        "Duplicate unit instance name",
		UntUnrecognizedPrefix:           "Unrecognized prefix",
		UntAmbiguousPrefix:              "Both a metric and a binary prefix were given",
		UntSelfReference:                "Unit instance is defined in terms of itself",
		UntBiasTermMissing:              "Unit does not include a bias term",
		UntBiasTermNotAllowed:           "Derivable unit cannot include a bias term",
		UntDuplicateDerivationID:        "Duplicate derivation ID",
		UntDuplicateDerivationSignature: "Duplicate derivation signature",
		UntMultipleDerivationsWithoutID: "Multiple derivations require IDs",
		UntInvalidDerivationExpression:  "Invalid derivation expression",
		UntUnmatchedPlaceholder:         "Expression placeholder has no matching signature element",
		UntUnusedSignatureElement:       "Signature element is not used by the expression",
		UntRedundantPermutations:        "Permutations are redundant",
		UntInvalidScale:                 "Invalid scale expression",
		UntInvalidBias:                  "Invalid bias expression",
		UntDerivationArity:              "Number of units does not match the derivation signature",
		UntMultipleFixed:                "Unit already has a fixed unit instance",
		UntDuplicateUnitType:            "Duplicate unit type",
		UntIncludeAndExclude:            "Cannot both include and exclude unit instances",
		UntAmbiguousDerivation:          "Derivation ID is required",
		RefInfo:                         "Reference information",
		RefUnrecognizedUnitName:         "Unrecognized unit instance name",
		RefUnrecognizedDerivationID:     "Unrecognized derivation ID",
		RefUnrecognizedUnitType:         "Unrecognized unit type",
		RefCyclicDependency:             "Cyclic unit instance dependency",
		RefUnresolvedDependency:         "Unresolved unit instance dependency",
		IOInfo:                          "I/O information",
		IOLoadFileError:                 "I/O load file error",
		IODeclSyntax:                    "Malformed declaration document",
		IODeclUnknownKey:                "Unknown declaration key",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LST%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("UNT%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("REF%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
