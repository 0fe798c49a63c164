package document

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"curriculum-forge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Getting started</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Install the </w:t></w:r><w:r><w:t>tools.</w:t></w:r></w:p>
<w:p><w:r><w:t>Configure them.</w:t></w:r></w:p>
<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Next steps</w:t></w:r></w:p>
<w:p><w:r><w:t>Build something.</w:t></w:r></w:p>
</w:body></w:document>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeDocx(t *testing.T, dir, name string, parts map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for partName, body := range parts {
		w, err := zw.Create(partName)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func newTestParser(t *testing.T) (*Parser, string) {
	dir := t.TempDir()
	return NewParser(dir, zap.NewNop()), dir
}

func TestParser_Parse_Text(t *testing.T) {
	parser, _ := newTestParser(t)
	path := writeFile(t, t.TempDir(), "notes.txt", "Hello   world\r\n\r\n\r\nSecond")

	text, err := parser.Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Hello world\n\nSecond", text)
}

func TestParser_Parse_Docx(t *testing.T) {
	parser, _ := newTestParser(t)
	path := writeDocx(t, t.TempDir(), "course.docx", map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types/>`,
		"word/document.xml":   sampleDocumentXML,
	})

	text, err := parser.Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Getting started Install the tools. Configure them.\n\nNext steps Build something.", text)
}

func TestParser_Parse_DocxTextBox(t *testing.T) {
	const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Overview</w:t></w:r></w:p>
<w:p><w:r><w:t>Before box.</w:t></w:r><w:r><w:pict><w:txbxContent><w:p><w:r><w:t>Inside box.</w:t></w:r></w:p></w:txbxContent></w:pict></w:r><w:r><w:t>After box.</w:t></w:r></w:p>
<w:p><w:r><w:t>Closing line.</w:t></w:r></w:p>
</w:body></w:document>`

	parser, _ := newTestParser(t)
	path := writeDocx(t, t.TempDir(), "boxed.docx", map[string]string{
		"word/document.xml": documentXML,
	})

	text, err := parser.Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Overview Before box. Inside box. After box. Closing line.", text)
}

func TestParser_Parse_DocxHeadingWithTextBox(t *testing.T) {
	const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>Intro text.</w:t></w:r></w:p>
<w:p><w:pPr><w:pStyle w:val="Heading2"/></w:pPr><w:r><w:t>Routing</w:t></w:r><w:r><w:pict><w:txbxContent><w:p><w:r><w:t>Sidebar.</w:t></w:r></w:p></w:txbxContent></w:pict></w:r><w:r><w:t>basics</w:t></w:r></w:p>
<w:p><w:r><w:t>Tables map prefixes.</w:t></w:r></w:p>
</w:body></w:document>`

	parser, _ := newTestParser(t)
	path := writeDocx(t, t.TempDir(), "heading.docx", map[string]string{
		"word/document.xml": documentXML,
	})

	text, err := parser.Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Intro text.\n\nRouting Sidebar. basics Tables map prefixes.", text)
}

func TestParser_Parse_Errors(t *testing.T) {
	parser, _ := newTestParser(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		code domain.ErrorCode
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.pdf"), code: domain.ErrDocumentNotFound},
		{name: "directory", path: dir, code: domain.ErrDocumentNotFound},
		{name: "unsupported extension", path: writeFile(t, dir, "slides.pptx", "data"), code: domain.ErrUnsupportedFormat},
		{name: "corrupt pdf", path: writeFile(t, dir, "broken.pdf", "not a pdf at all"), code: domain.ErrParseFailure},
		{name: "docx without body", path: writeDocx(t, dir, "empty.docx", map[string]string{"docProps/app.xml": "<x/>"}), code: domain.ErrParseFailure},
		{name: "docx not a zip", path: writeFile(t, dir, "fake.docx", "plain text"), code: domain.ErrParseFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(context.Background(), tt.path)
			require.Error(t, err)
			assert.True(t, domain.HasCode(err, tt.code), "unexpected error: %v", err)
		})
	}
}

func TestParser_ParseUpload_RemovesTempFile(t *testing.T) {
	parser, tempDir := newTestParser(t)

	text, err := parser.ParseUpload(context.Background(), "Notes.TXT", strings.NewReader("Some   text"))
	require.NoError(t, err)
	assert.Equal(t, "Some text", text)

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParser_ParseUpload_RemovesTempFileOnFailure(t *testing.T) {
	parser, tempDir := newTestParser(t)

	_, err := parser.ParseUpload(context.Background(), "broken.pdf", strings.NewReader("garbage"))
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrParseFailure))

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParser_ParseUpload_Unsupported(t *testing.T) {
	parser, tempDir := newTestParser(t)

	_, err := parser.ParseUpload(context.Background(), "virus.exe", strings.NewReader("MZ"))
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrUnsupportedFormat))

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFormatFor(t *testing.T) {
	f, ok := FormatFor("Report.PDF")
	assert.True(t, ok)
	assert.Equal(t, FormatPDF, f)

	_, ok = FormatFor("archive.zip")
	assert.False(t, ok)
}
