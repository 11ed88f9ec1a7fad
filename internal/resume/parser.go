package resume

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ErrUnsupportedType reports a file extension outside the accepted set.
type ErrUnsupportedType struct {
	Filename string
}

func (e *ErrUnsupportedType) Error() string {
	return fmt.Sprintf("unsupported file type: %s (allowed: .pdf, .docx, .doc)", e.Filename)
}

// Parser extracts plain text from uploaded resume files.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse routes the file to the right extractor by extension and returns the
// extracted text with trailing whitespace trimmed.
func (p *Parser) Parse(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return p.parsePDF(data)
	case ".docx", ".doc":
		return p.parseDocx(data)
	default:
		return "", &ErrUnsupportedType{Filename: filename}
	}
}

func (p *Parser) parsePDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("error parsing PDF: %w", err)
	}

	var text strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("error parsing PDF page %d: %w", i, err)
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}
	return strings.TrimRight(text.String(), " \t\r\n"), nil
}

var (
	paragraphEnd = regexp.MustCompile(`</w:p>`)
	textRun      = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
	anyTag       = regexp.MustCompile(`<[^>]+>`)
)

func (p *Parser) parseDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("error parsing DOCX: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	return strings.TrimRight(extractDocxText(content), " \t\r\n"), nil
}

// extractDocxText flattens WordprocessingML: text runs are concatenated and
// each paragraph ends with a newline.
func extractDocxText(xmlContent string) string {
	var text strings.Builder
	for _, para := range paragraphEnd.Split(xmlContent, -1) {
		runs := textRun.FindAllStringSubmatch(para, -1)
		if len(runs) == 0 {
			continue
		}
		for _, run := range runs {
			text.WriteString(decodeXMLEntities(run[1]))
		}
		text.WriteString("\n")
	}
	if text.Len() > 0 {
		return text.String()
	}
	// No recognizable runs; strip tags wholesale rather than return markup.
	return anyTag.ReplaceAllString(xmlContent, "")
}

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

func decodeXMLEntities(s string) string {
	return entityReplacer.Replace(s)
}
