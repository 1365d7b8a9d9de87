package extraction

import "strings"

// markupTokens are the emphasis delimiters the model sometimes emits
// despite being told not to. Two-character tokens come first so "**"
// is removed as a pair rather than as two stray asterisks.
var markupTokens = []string{"**", "__", "~~", "*", "_", "`"}

// SanitizeField cleans one raw value taken from a line of a model
// response. It trims whitespace, strips markup delimiters wherever
// they appear, removes the literal "null"/"NULL" tokens the prompt
// asks the model to use for missing fields, and trims again.
// Returns "" when nothing usable remains. This never fails.
func SanitizeField(raw string) string {
	s := strings.TrimSpace(raw)
	for _, tok := range markupTokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	s = strings.ReplaceAll(s, "null", "")
	s = strings.ReplaceAll(s, "NULL", "")
	return strings.TrimSpace(s)
}
