package terminal

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Sanitize makes host-supplied text safe to draw: escape sequences are
// removed and other control characters are dropped, except tabs which
// become a single space.
func Sanitize(s string) string {
	s = ansi.Strip(s)

	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, s)
}

// SanitizeLines applies Sanitize to every line, returning a new slice.
func SanitizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Sanitize(line)
	}

	return out
}
