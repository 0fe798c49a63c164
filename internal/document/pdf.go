package document

import (
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// parsePDF walks pages in order and groups their lines at detected headers.
func parsePDF(ctx context.Context, path string) (text string, err error) {
	// The pdf reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	grouper := &sectionGrouper{}
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i, err)
		}
		if pageText == "" {
			continue
		}
		grouper.addText(Normalize(pageText))
	}
	return grouper.text(), nil
}
