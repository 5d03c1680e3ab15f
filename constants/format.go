package constants

import "strings"

// Format identifies a supported document format.
type Format string

const (
	PDF  Format = "pdf"
	DOCX Format = "docx"
	XLSX Format = "xlsx"
)

// ParseMode is the caller-supplied detection override. ModeAuto defers to
// extension and MIME detection.
type ParseMode string

const (
	ModeAuto ParseMode = "auto"
	ModePDF  ParseMode = "pdf"
	ModeDOCX ParseMode = "docx"
	ModeXLSX ParseMode = "xlsx"
)

// NormalizeParseMode lowercases the input and coerces anything outside the
// known set to ModeAuto.
func NormalizeParseMode(input string) ParseMode {
	switch ParseMode(strings.ToLower(strings.TrimSpace(input))) {
	case ModePDF:
		return ModePDF
	case ModeDOCX:
		return ModeDOCX
	case ModeXLSX:
		return ModeXLSX
	default:
		return ModeAuto
	}
}

// Format returns the fixed format a non-auto mode selects.
func (m ParseMode) Format() (Format, bool) {
	switch m {
	case ModePDF:
		return PDF, true
	case ModeDOCX:
		return DOCX, true
	case ModeXLSX:
		return XLSX, true
	default:
		return "", false
	}
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

var extToFormat = map[string]Format{
	"pdf":  PDF,
	"docx": DOCX,
	"xlsx": XLSX,
}

// MapExtToFormat resolves a filename extension (with or without dot) to a
// supported format.
func MapExtToFormat(ext string) (Format, bool) {
	f, ok := extToFormat[NormalizeExt(ext)]
	return f, ok
}

// mimeSignatures maps declared Content-Type substrings to formats. Order
// matters: the first match wins.
var mimeSignatures = []struct {
	substr string
	format Format
}{
	{"pdf", PDF},
	{"wordprocessingml", DOCX},
	{"spreadsheetml", XLSX},
	{"excel", XLSX},
}

// MatchMIME resolves a declared MIME type to a supported format by substring
// signature.
func MatchMIME(contentType string) (Format, bool) {
	ct := strings.ToLower(contentType)
	for _, sig := range mimeSignatures {
		if strings.Contains(ct, sig.substr) {
			return sig.format, true
		}
	}
	return "", false
}
