package extract

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/vocabforge/vocabforge-server/constants"
)

// PDFExtractor returns the concatenated textual content of a PDF document.
type PDFExtractor struct{}

func (e *PDFExtractor) Format() constants.Format { return constants.PDF }

func (e *PDFExtractor) Extract(content []byte) (string, error) {
	doc, err := fitz.NewFromMemory(content)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	var b strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		text, err := doc.Text(page)
		if err != nil {
			return "", fmt.Errorf("extract text from page %d: %w", page, err)
		}
		b.WriteString(text)
	}
	return b.String(), nil
}
