package script

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NonBlank accepts any input with at least one non-whitespace rune.
func NonBlank(input string) bool {
	return strings.TrimSpace(input) != ""
}

// EmailAddress accepts a loosely email-shaped input: something, an @,
// something, a dot, something, with no whitespace.
func EmailAddress(input string) bool {
	return emailPattern.MatchString(input)
}

// PhoneNumber accepts input carrying at least 10 digits, however
// formatted.
func PhoneNumber(input string) bool {
	return len(digitsOf(input)) >= 10
}

// MinLen accepts trimmed input of at least n runes.
func MinLen(n int) func(string) bool {
	return func(input string) bool {
		return len([]rune(strings.TrimSpace(input))) >= n
	}
}

func digitsOf(s string) string {
	b := &strings.Builder{}
	for _, r := range s {
		if '0' <= r && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
