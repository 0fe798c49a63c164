package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"curriculum-forge/internal/domain"

	"go.uber.org/zap"
)

// Format is a supported document family.
type Format string

const (
	FormatPDF  Format = "PDF"
	FormatDOCX Format = "DOCX"
	FormatDOC  Format = "DOC"
	FormatText Format = "TXT"
)

var formatsByExt = map[string]Format{
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	".doc":  FormatDOC,
	".txt":  FormatText,
	".text": FormatText,
	".md":   FormatText,
}

// FormatFor returns the format registered for a file name's extension.
func FormatFor(name string) (Format, bool) {
	f, ok := formatsByExt[strings.ToLower(filepath.Ext(name))]
	return f, ok
}

// Parser extracts one normalized text blob from a document.
type Parser struct {
	// TempDir receives buffered uploads; empty means os.TempDir().
	TempDir string
	logger  *zap.Logger
}

// NewParser creates a new Parser instance
func NewParser(tempDir string, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{TempDir: tempDir, logger: logger}
}

// Parse reads the document at path and returns its normalized text with
// paragraph groups separated by blank lines.
func (p *Parser) Parse(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.NewDocumentNotFoundError(path)
		}
		return "", domain.NewParseFailureError("Document", err)
	}
	if info.IsDir() {
		return "", domain.NewDocumentNotFoundError(path)
	}

	format, ok := FormatFor(path)
	if !ok {
		return "", domain.NewUnsupportedFormatError(strings.ToLower(filepath.Ext(path)))
	}

	var text string
	switch format {
	case FormatPDF:
		text, err = parsePDF(ctx, path)
	case FormatDOCX:
		text, err = parseDOCX(ctx, path)
	case FormatDOC:
		text, err = parseDOC(path)
	case FormatText:
		text, err = parseText(path)
	}
	if err != nil {
		p.logger.Error("Document parsing failed",
			zap.String("path", path),
			zap.String("format", string(format)),
			zap.Error(err))
		return "", domain.NewParseFailureError(string(format), err)
	}

	p.logger.Info("Document parsed",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("chars", len(text)))
	return text, nil
}

// ParseUpload buffers r into a temporary file carrying filename's extension,
// parses it and removes the file on every exit path.
func (p *Parser) ParseUpload(ctx context.Context, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := formatsByExt[ext]; !ok {
		return "", domain.NewUnsupportedFormatError(ext)
	}

	tmp, err := os.CreateTemp(p.TempDir, "upload-*"+ext)
	if err != nil {
		return "", domain.NewInternalError("Failed to buffer upload", err)
	}
	defer func() {
		if rmErr := os.Remove(tmp.Name()); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			p.logger.Warn("Failed to remove buffered upload", zap.String("path", tmp.Name()), zap.Error(rmErr))
		}
	}()

	_, copyErr := io.Copy(tmp, r)
	closeErr := tmp.Close()
	if copyErr != nil {
		return "", domain.NewParseFailureError("Upload", fmt.Errorf("buffer upload: %w", copyErr))
	}
	if closeErr != nil {
		return "", domain.NewParseFailureError("Upload", fmt.Errorf("close buffered upload: %w", closeErr))
	}

	return p.Parse(ctx, tmp.Name())
}

func parseText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	return Normalize(string(data)), nil
}
