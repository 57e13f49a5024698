package raml

import (
	"strings"
	"unicode"

	"github.com/gertd/go-pluralize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Casers keep state between calls and must not be shared across
// goroutines, so each call builds its own.
func upperString(s string) string { return cases.Upper(language.Und).String(s) }
func lowerString(s string) string { return cases.Lower(language.Und).String(s) }
func titleString(s string) string { return cases.Title(language.Und).String(s) }

// transformers are the functions a template placeholder may pipe its value
// through, e.g. <<resourcePathName | !singularize>>.
var transformers = map[string]func(string) string{
	"singularize":         singularizeWord,
	"pluralize":           pluralizeWord,
	"uppercase":           upperString,
	"lowercase":           lowerString,
	"lowercamelcase":      lowerCamelCase,
	"uppercamelcase":      upperCamelCase,
	"lowerunderscorecase": func(s string) string { return lowerString(strings.Join(splitWords(s), "_")) },
	"upperunderscorecase": func(s string) string { return upperString(strings.Join(splitWords(s), "_")) },
	"lowerhyphencase":     func(s string) string { return lowerString(strings.Join(splitWords(s), "-")) },
	"upperhyphencase":     func(s string) string { return upperString(strings.Join(splitWords(s), "-")) },
}

// transform applies the named transformer. ok is false for unknown names.
func transform(name, value string) (string, bool) {
	fn, ok := transformers[name]
	if !ok {
		return value, false
	}
	return fn(value), true
}

// splitWords breaks s on separators and lower-to-upper case changes:
// "userId", "user_id" and "user-id" all give ["user", "Id"/"id"].
func splitWords(s string) []string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()
	return words
}

func upperCamelCase(s string) string {
	var b strings.Builder
	for _, w := range splitWords(s) {
		b.WriteString(titleString(w))
	}
	return b.String()
}

func lowerCamelCase(s string) string {
	words := splitWords(s)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(lowerString(words[0]))
	for _, w := range words[1:] {
		b.WriteString(titleString(w))
	}
	return b.String()
}

// inflector is built once; its rule tables are read-only after construction.
var inflector = pluralize.NewClient()

func pluralizeWord(word string) string {
	if word == "" {
		return word
	}
	return inflector.Plural(word)
}

func singularizeWord(word string) string {
	if word == "" {
		return word
	}
	return inflector.Singular(word)
}
