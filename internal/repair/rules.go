package repair

import (
	"regexp"
	"strings"
)

var (
	codeFenceRe     = regexp.MustCompile("(?i)```(json)?")
	trailingCommaRe = regexp.MustCompile(`(?:,\s*)+([\]}])`)
	bareKeyRe       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	adjacentObjRe   = regexp.MustCompile(`}\s*{`)
)

func stripCodeFences(s string) string {
	return codeFenceRe.ReplaceAllString(s, "")
}

// removeTrailingCommas drops a whole run of commas before a closer.
func removeTrailingCommas(s string) string {
	return trailingCommaRe.ReplaceAllString(s, "$1")
}

// stripControlChars turns newlines and tabs into spaces and drops the rest of
// the C0 range and DEL.
func stripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, s)
}

var closerFor = map[byte]byte{'[': ']', '{': '}'}

// balanceClosers closes an unterminated string and every unmatched opener,
// innermost first. A closer whose opener is buried under other openers closes
// those first; a closer with no opener at all is dropped. Brackets inside
// strings are ignored.
func balanceClosers(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	var stack []byte
	inString, escaped := false, false

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			b.WriteByte(ch)
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '[', '{':
			stack = append(stack, ch)
		case ']', '}':
			idx := lastOpener(stack, ch)
			if idx < 0 {
				continue
			}
			for j := len(stack) - 1; j > idx; j-- {
				b.WriteByte(closerFor[stack[j]])
			}
			stack = stack[:idx]
		}
		b.WriteByte(ch)
	}

	out := b.String()
	if inString {
		if escaped {
			out = out[:len(out)-1]
		}
		out += `"`
	}
	if len(stack) == 0 {
		return out
	}

	out = strings.TrimRight(out, ", \t\n\r")
	var closers strings.Builder
	for j := len(stack) - 1; j >= 0; j-- {
		closers.WriteByte(closerFor[stack[j]])
	}
	return out + closers.String()
}

func lastOpener(stack []byte, closer byte) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if closerFor[stack[i]] == closer {
			return i
		}
	}
	return -1
}

func wrapArray(s string) string {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "[") {
		return s
	}
	return "[" + trimmed + "]"
}

func quoteBareKeys(s string) string {
	return bareKeyRe.ReplaceAllString(s, `$1"$2":`)
}

// balanceBraces adds missing '}' before a trailing ']' or at the end.
func balanceBraces(s string) string {
	missing := strings.Count(s, "{") - strings.Count(s, "}")
	if missing <= 0 {
		return s
	}
	closers := strings.Repeat("}", missing)
	trimmed := strings.TrimRight(s, " \t\n\r")
	if strings.HasSuffix(trimmed, "]") {
		return trimmed[:len(trimmed)-1] + closers + "]"
	}
	return trimmed + closers
}

func commaBetweenObjects(s string) string {
	return adjacentObjRe.ReplaceAllString(s, "},{")
}
