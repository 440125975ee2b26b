package aggregate

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	whitespaceRun   = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	templateLiteral = regexp.MustCompile("\\{`.*?`\\}")
	markupTag       = regexp.MustCompile(`<.*?>`)
	leadingFence    = regexp.MustCompile(`^---[\s\S]*?---`)
)

// Normalize flattens source text into a single line of readable prose.
// Steps run in a fixed order: trim, collapse whitespace, drop {`...`}
// literals, drop anything shaped like <...>, drop one leading ---...--- block.
// The regexes are naive and may eat legitimate content.
func Normalize(raw string) string {
	s := strings.TrimFunc(raw, isTrimmable)
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = templateLiteral.ReplaceAllString(s, "")
	s = markupTag.ReplaceAllString(s, "")
	if loc := leadingFence.FindStringIndex(s); loc != nil {
		s = s[loc[1]:]
	}
	return s
}

// isTrimmable also treats the byte-order mark as whitespace so a BOM-prefixed
// file still loses its leading frontmatter.
func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Identity returns raw content unchanged.
func Identity(raw string) string { return raw }
