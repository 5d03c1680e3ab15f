package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vocabforge/vocabforge-server/constants"
)

// DOCXExtractor returns the raw text body of a Word-processing XML package,
// formatting discarded. DOCX is a zip archive whose text lives in
// word/document.xml as runs of w:t elements grouped into w:p paragraphs.
type DOCXExtractor struct{}

func (e *DOCXExtractor) Format() constants.Format { return constants.DOCX }

func (e *DOCXExtractor) Extract(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open docx package: %w", err)
	}

	var docXML io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			if err != nil {
				return "", fmt.Errorf("open document part: %w", err)
			}
			break
		}
	}
	if docXML == nil {
		return "", errors.New("docx package has no word/document.xml")
	}
	defer docXML.Close()

	return readDocumentText(docXML)
}

// readDocumentText walks the document XML collecting character data inside
// w:t runs. Paragraph ends become newlines, explicit breaks and tabs become
// their whitespace equivalents.
func readDocumentText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		b      strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
