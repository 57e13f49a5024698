package enricher

import (
	"strings"
	"unicode"
)

// MakeResourceID derives the identifier of a resource from its parent URL
// and relative URI. Every character other than an ASCII letter, digit or
// underscore becomes "_", then leading underscores are removed:
//
//	MakeResourceID("", "/users")       // "users"
//	MakeResourceID("/users", "/{id}")  // "users__id_"
func MakeResourceID(parentURL, relativeURI string) string {
	id := strings.Map(func(r rune) rune {
		if isWordChar(r) {
			return r
		}
		return '_'
	}, parentURL+relativeURI)
	return strings.TrimLeft(id, "_")
}

// MakeDocID derives the identifier of a documentation section from its
// title. Every non-word character becomes "-"; nothing is trimmed:
//
//	MakeDocID("Getting Started!")  // "Getting-Started-"
func MakeDocID(title string) string {
	return strings.Map(func(r rune) rune {
		if isWordChar(r) {
			return r
		}
		return '-'
	}, title)
}

func isWordChar(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}
