package service

import (
	"fmt"
	"strings"

	"curriculum-forge/internal/domain"
)

const modulePromptTemplate = `Analyze this educational content and break it into logical modules with prerequisites.
STRICT FORMATTING RULES:
1. Escape all double quotes inside content with backslash (\")
2. Use only double quotes for strings
3. Ensure JSON is properly closed
Format response as a JSON array with objects containing: name (string), summary (string), content (string), prerequisites (array of strings).
Content chunk %d/%d:
%s
Return ONLY valid JSON with proper escaping. No markdown or extra text.`

// buildModulePrompt embeds one chunk and its 1-based position.
func buildModulePrompt(chunk string, index, total int) string {
	return fmt.Sprintf(modulePromptTemplate, index, total, chunk)
}

// buildQuizPrompt asks for 3-5 questions over one part of a module.
func buildQuizPrompt(module domain.Module, part string, index, total int, extraInstruction string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate 3-5 quiz questions for module: %s\n", module.Name)
	fmt.Fprintf(&b, "Summary: %s\n", module.Summary)
	fmt.Fprintf(&b, "Content: %s\n", part)
	if total > 1 {
		fmt.Fprintf(&b, "Content part %d/%d\n", index, total)
	}
	b.WriteString("Format each question as JSON with: question, options (array), answer, difficulty (1-5), topics (array)\n")
	if extra := strings.TrimSpace(extraInstruction); extra != "" {
		b.WriteString(extra)
		b.WriteString("\n")
	}
	b.WriteString("Return only valid JSON array of questions. Ensure JSON is properly formatted with no markdown.")
	return b.String()
}
