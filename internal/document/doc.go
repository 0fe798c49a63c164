package document

import (
	"fmt"
	"os"

	"code.sajari.com/docconv"
)

const docMimeType = "application/msword"

// parseDOC converts a legacy Word file with docconv; it needs the wv tools
// (wvText) on PATH.
func parseDOC(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open doc: %w", err)
	}
	defer f.Close()

	res, err := docconv.Convert(f, docMimeType, false)
	if err != nil {
		return "", fmt.Errorf("convert doc: %w", err)
	}

	grouper := &sectionGrouper{}
	grouper.addText(Normalize(res.Body))
	return grouper.text(), nil
}
