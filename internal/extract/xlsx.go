package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vocabforge/vocabforge-server/constants"
)

// XLSXExtractor serializes every sheet of a workbook to CSV text and joins
// the sheets with newlines, preserving the workbook's sheet order.
type XLSXExtractor struct{}

func (e *XLSXExtractor) Format() constants.Format { return constants.XLSX }

func (e *XLSXExtractor) Extract(content []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	chunks := make([]string, 0, len(f.GetSheetList()))
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		csvText, err := rowsToCSV(rows)
		if err != nil {
			return "", fmt.Errorf("serialize sheet %q: %w", sheet, err)
		}
		chunks = append(chunks, csvText)
	}
	return strings.Join(chunks, "\n"), nil
}

func rowsToCSV(rows [][]string) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
