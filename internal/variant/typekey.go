package variant

import (
	"strings"
	"unicode"
)

// TypeKey derives the variant lookup key from a plant record id: lower-cased,
// with every whitespace run collapsed to a single hyphen.
func TypeKey(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	inSpace := false
	for _, r := range strings.ToLower(id) {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
