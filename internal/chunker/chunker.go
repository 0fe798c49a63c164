// Package chunker splits normalized document text into pieces that fit a
// model's context budget.
package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxTokens is used when a Chunker is built with a non-positive budget.
const DefaultMaxTokens = 2000

const paragraphSeparator = "\n\n"

var sentenceEndRe = regexp.MustCompile(`[.!?]\s+`)

// EstimateTokens approximates a token count as one token per four characters.
func EstimateTokens(text string) int {
	return utf8.RuneCountInString(text) / 4
}

// Chunker packs paragraphs greedily up to MaxTokens estimated tokens.
//
// Every chunk is an exact substring of the input and the chunks concatenate
// back to it, so no text is lost or reordered.
type Chunker struct {
	MaxTokens int
}

// New creates a new Chunker instance
func New(maxTokens int) *Chunker {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Chunker{MaxTokens: maxTokens}
}

func (c *Chunker) budget() int {
	if c == nil || c.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return c.MaxTokens
}

// Chunk splits text into budget-sized chunks. A paragraph that alone exceeds
// the budget is split at sentence boundaries; a sentence that still does not
// fit becomes its own chunk. When maxChunks > 0 and more chunks were produced,
// consecutive chunks are coalesced so at most maxChunks remain.
func (c *Chunker) Chunk(text string, maxChunks int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	budget := c.budget()
	if EstimateTokens(text) <= budget {
		return []string{text}
	}

	p := &packer{budget: budget}
	for _, unit := range strings.SplitAfter(text, paragraphSeparator) {
		if unit == "" {
			continue
		}
		if EstimateTokens(unit) <= budget {
			p.add(unit)
			continue
		}
		for _, sentence := range splitSentences(unit) {
			p.add(sentence)
		}
	}
	return coalesce(p.finish(), maxChunks)
}

// splitSentences cuts after each sentence terminator and its trailing whitespace.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(text, -1) {
		sentences = append(sentences, text[start:loc[1]])
		start = loc[1]
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

// packer accumulates pieces into chunks. Whitespace-only content is never
// emitted on its own; it rides along with the next piece.
type packer struct {
	budget  int
	chunks  []string
	current strings.Builder
}

func (p *packer) add(piece string) {
	cur := p.current.String()
	if strings.TrimSpace(cur) != "" && EstimateTokens(cur)+EstimateTokens(piece) > p.budget {
		p.chunks = append(p.chunks, cur)
		p.current.Reset()
	}
	p.current.WriteString(piece)
}

func (p *packer) finish() []string {
	cur := p.current.String()
	p.current.Reset()
	switch {
	case cur == "":
	case strings.TrimSpace(cur) == "" && len(p.chunks) > 0:
		p.chunks[len(p.chunks)-1] += cur
	default:
		p.chunks = append(p.chunks, cur)
	}
	return p.chunks
}

// coalesce joins consecutive groups of ceil(n/maxChunks) chunks.
func coalesce(chunks []string, maxChunks int) []string {
	if maxChunks <= 0 || len(chunks) <= maxChunks {
		return chunks
	}
	size := (len(chunks) + maxChunks - 1) / maxChunks
	merged := make([]string, 0, maxChunks)
	for i := 0; i < len(chunks); i += size {
		end := min(i+size, len(chunks))
		merged = append(merged, strings.Join(chunks[i:end], ""))
	}
	return merged
}
