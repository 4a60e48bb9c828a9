package textutil

import (
	"strings"
	"unicode"
)

// WordCount returns the number of whitespace-separated tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// TruncateWords cuts text to at most limit bytes, backing off to the last
// whitespace so no word is split. The second return reports whether text was
// shortened.
func TruncateWords(text string, limit int) (string, bool) {
	if limit <= 0 || len(text) <= limit {
		return text, false
	}
	cut := text[:limit]
	if idx := strings.LastIndexFunc(cut, unicode.IsSpace); idx > 0 {
		cut = cut[:idx]
	} else {
		// Back off to a rune boundary when the prefix has no whitespace.
		for len(cut) > 0 && !utf8Start(text[len(cut)]) {
			cut = cut[:len(cut)-1]
		}
	}
	return strings.TrimRightFunc(cut, unicode.IsSpace), true
}

func utf8Start(b byte) bool {
	return b&0xC0 != 0x80
}

// CollapseSpace joins the fields of text with single spaces.
func CollapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
