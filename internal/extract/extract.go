// Package extract resolves uploaded documents to a supported format and
// pulls their plain text content.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vocabforge/vocabforge-server/constants"
	"github.com/vocabforge/vocabforge-server/internal/common"
)

// Extractor converts raw file bytes of one format into plain text.
type Extractor interface {
	Format() constants.Format
	Extract(content []byte) (string, error)
}

// Registry maps each supported format to its extractor.
type Registry map[constants.Format]Extractor

// NewRegistry builds the default registry covering every supported format.
func NewRegistry() Registry {
	r := Registry{}
	for _, e := range []Extractor{&PDFExtractor{}, &DOCXExtractor{}, &XLSXExtractor{}} {
		r[e.Format()] = e
	}
	return r
}

// Resolve picks the document format by explicit priority:
// parse-mode override > filename extension > declared-MIME signature.
// When nothing matches it fails with ErrUnsupportedFormat.
func Resolve(filename, contentType string, mode constants.ParseMode) (constants.Format, error) {
	if f, ok := mode.Format(); ok {
		return f, nil
	}
	if f, ok := constants.MapExtToFormat(filepath.Ext(filename)); ok {
		return f, nil
	}
	if f, ok := constants.MatchMIME(contentType); ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (%s); upload a PDF, DOCX, or XLSX file",
		common.ErrUnsupportedFormat, filename, contentType)
}

// ExtractText runs the extractor for the resolved format. Decode errors
// surface as ErrExtractionFailed with the underlying cause; a document that
// decodes to empty or all-whitespace text is ErrNoExtractableText, which is
// the caller's fault, not the extractor's.
func (r Registry) ExtractText(content []byte, format constants.Format) (string, error) {
	e, ok := r[format]
	if !ok {
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, format)
	}
	text, err := e.Extract(content)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", common.ErrExtractionFailed, format, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", common.ErrNoExtractableText
	}
	return text, nil
}
