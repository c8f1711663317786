package dedupe

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize prepares a label for comparison: NFC composition so decomposed
// accents compare equal to their composed forms, lower-casing, and collapsing
// internal whitespace runs to single spaces with the ends trimmed.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}
