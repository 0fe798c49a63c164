package document

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxHeaderLen = 100

var (
	chapterHeaderRe  = regexp.MustCompile(`(?i)^(chapter|section|module|unit|lesson|part)\s+\d+`)
	numberedHeaderRe = regexp.MustCompile(`^\d+(\.\d+)*\.?\s+\S`)
)

// IsSectionHeader reports whether a line looks like a heading: it is short and
// either names a numbered chapter/section/module/unit/lesson/part, starts with
// a heading number, is entirely upper-case, or ends with a colon.
func IsSectionHeader(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || utf8.RuneCountInString(line) >= maxHeaderLen {
		return false
	}
	return chapterHeaderRe.MatchString(line) ||
		numberedHeaderRe.MatchString(line) ||
		isUpperCase(line) ||
		strings.HasSuffix(line, ":")
}

// isUpperCase is true when the line has at least one letter and no lower-case one.
func isUpperCase(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

// sectionGrouper collects lines into paragraph groups. A header line closes
// the running group and opens a new one; groups carry over page boundaries.
type sectionGrouper struct {
	groups  []string
	current []string
}

func (g *sectionGrouper) add(line string, header bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if header {
		g.flush()
	}
	g.current = append(g.current, line)
}

// addText feeds every line of an already normalized block through the header heuristic.
func (g *sectionGrouper) addText(text string) {
	for _, line := range strings.Split(text, "\n") {
		g.add(line, IsSectionHeader(line))
	}
}

func (g *sectionGrouper) flush() {
	if len(g.current) == 0 {
		return
	}
	g.groups = append(g.groups, strings.Join(g.current, " "))
	g.current = nil
}

func (g *sectionGrouper) text() string {
	g.flush()
	return strings.Join(g.groups, "\n\n")
}
