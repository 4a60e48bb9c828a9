package textutil

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase upper-cases the first letter of every word and collapses
// surrounding whitespace. Existing capitals (acronyms) are preserved.
func TitleCase(value string) string {
	value = CollapseSpace(value)
	if value == "" {
		return ""
	}
	return cases.Title(language.Und, cases.NoLower).String(value)
}
