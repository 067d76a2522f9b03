package units

import (
	"strings"
	"unicode"
)

// DefaultPlural is used when an instance does not state its plural form.
const DefaultPlural = "{0}s"

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// ExpandPlural substitutes the singular name for "{0}" in plural.
func ExpandPlural(plural, name string) string {
	return strings.ReplaceAll(plural, "{0}", name)
}
