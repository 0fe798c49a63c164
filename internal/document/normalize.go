package document

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	hyphenBreakRe = regexp.MustCompile(`([\p{L}\p{N}])-[ \t]*\n[ \t]*([\p{L}\p{N}])`)
	spaceRunRe    = regexp.MustCompile(`[ \t]+`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)
)

// Normalize cleans extracted text while keeping paragraph breaks.
//
// Control and format characters are dropped, other non-printable runes become
// spaces, words hyphenated across a line wrap are rejoined, horizontal
// whitespace is collapsed, lines are trimmed and runs of blank lines shrink to
// a single blank line.
func Normalize(text string) string {
	text = strings.ToValidUTF8(text, " ")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.Map(cleanRune, text)
	text = hyphenBreakRe.ReplaceAllString(text, "${1}${2}")
	text = spaceRunRe.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func cleanRune(r rune) rune {
	switch {
	case r == '\n' || r == '\t':
		return r
	case unicode.IsControl(r), unicode.Is(unicode.Cf, r):
		return -1
	case unicode.IsSpace(r), !unicode.IsPrint(r):
		return ' '
	}
	return r
}
