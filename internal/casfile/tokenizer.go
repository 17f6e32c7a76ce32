package casfile

import (
	"strings"
	"unicode"
)

const delimiters = "[],#"

// tokenize splits a line on whitespace and on the delimiter characters,
// keeping each delimiter as its own token. Whitespace is dropped.
func tokenize(line string) []string {
	var tokens []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, r := range line {
		switch {
		case unicode.IsSpace(r):
			flush()
		case strings.ContainsRune(delimiters, r):
			flush()
			tokens = append(tokens, string(r))
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// isNameStart reports whether a token can begin a content line.
func isNameStart(tok string) bool {
	r := []rune(tok)[0]
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// ValidName reports whether name survives a save and reload unchanged and
// can be quoted in generated rules.
func ValidName(name string) bool {
	tokens := tokenize(name)
	if len(tokens) != 1 || tokens[0] != name || !isNameStart(name) {
		return false
	}
	return !strings.ContainsAny(name, "\"()")
}
