package runtime

import (
	"strings"
	"unicode"
)

// Trigger phrases, matched as lowercase substrings.
const (
	PhraseChangeCollege = "change college"
	PhraseListColleges  = "list colleges"
	PhraseCompare       = "compare"
)

// greetings are matched as whole words so that "Chicago" or "this" never greet.
var greetings = map[string]struct{}{
	"hello": {},
	"hi":    {},
	"hii":   {},
}

func isGreeting(lower string) bool {
	for _, word := range words(lower) {
		if _, ok := greetings[word]; ok {
			return true
		}
	}
	return false
}

func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// splitPair splits "A and B" on the standalone word "and", case-insensitively.
// It succeeds only when exactly two non-empty names result.
func splitPair(text string) (string, string, bool) {
	var parts []string
	var current []string
	for _, field := range strings.Fields(text) {
		if strings.EqualFold(field, "and") {
			parts = append(parts, strings.Join(current, " "))
			current = nil
			continue
		}
		current = append(current, field)
	}
	parts = append(parts, strings.Join(current, " "))

	if len(parts) != 2 {
		return "", "", false
	}
	a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}
