package document

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const docxBodyPart = "word/document.xml"

// parseDOCX streams word/document.xml and starts a new paragraph group at
// every heading-styled paragraph or heuristic header.
func parseDOCX(ctx context.Context, path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == docxBodyPart {
			body = f
			break
		}
	}
	if body == nil {
		return "", fmt.Errorf("missing %s", docxBodyPart)
	}

	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("read %s: %w", docxBodyPart, err)
	}
	defer rc.Close()

	return walkDocxParagraphs(ctx, rc)
}

// docxParagraph is one open w:p. Paragraphs nest through text boxes.
type docxParagraph struct {
	style string
	parts []string
	// emitted is set once part of the paragraph was handed to the grouper.
	emitted bool
}

// docxState tracks the streaming decoder position.
type docxState struct {
	open    []*docxParagraph
	inText  bool
	grouper sectionGrouper
}

func walkDocxParagraphs(ctx context.Context, r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	s := &docxState{}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			s.handleStart(t)
		case xml.EndElement:
			s.handleEnd(t)
		case xml.CharData:
			if p := s.current(); p != nil && s.inText {
				p.parts = append(p.parts, string(t))
			}
		}
	}
	return s.grouper.text(), nil
}

func (s *docxState) current() *docxParagraph {
	if len(s.open) == 0 {
		return nil
	}
	return s.open[len(s.open)-1]
}

func (s *docxState) handleStart(t xml.StartElement) {
	switch t.Name.Local {
	case "p":
		// Text before a nested paragraph keeps its place in reading order.
		if outer := s.current(); outer != nil {
			s.emit(outer)
		}
		s.open = append(s.open, &docxParagraph{})
	case "pStyle":
		p := s.current()
		if p == nil {
			return
		}
		for _, attr := range t.Attr {
			if attr.Name.Local == "val" {
				p.style = attr.Value
			}
		}
	case "t":
		s.inText = true
	case "tab", "br", "cr":
		if p := s.current(); p != nil {
			p.parts = append(p.parts, " ")
		}
	}
}

func (s *docxState) handleEnd(t xml.EndElement) {
	switch t.Name.Local {
	case "t":
		s.inText = false
	case "p":
		p := s.current()
		if p == nil {
			return
		}
		s.open = s.open[:len(s.open)-1]
		s.emit(p)
	}
}

// emit hands the buffered text of p to the grouper. Only the first piece of a
// paragraph may start a new group.
func (s *docxState) emit(p *docxParagraph) {
	text := Normalize(strings.Join(p.parts, ""))
	p.parts = nil
	if text == "" {
		return
	}
	header := !p.emitted && (isHeadingStyle(p.style) || IsSectionHeader(text))
	s.grouper.add(text, header)
	p.emitted = true
}

func isHeadingStyle(style string) bool {
	style = strings.ToLower(style)
	return strings.HasPrefix(style, "heading") || style == "title"
}
