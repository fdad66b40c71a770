package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/models"
)

// ErrUnsupportedFormat is returned when a file's extension matches no known
// parser. Terminal for that file: the operator must supply a different one.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// DetectFormat maps a file name to the parser that applies, based solely on
// its lowercased extension. No file content is read here.
func DetectFormat(filename string) (models.FileFormat, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "xlsx":
		return models.SpreadsheetXML, nil
	case "xls":
		return models.SpreadsheetBinary, nil
	case "csv":
		return models.DelimitedText, nil
	case "xml":
		return models.StructuredMarkup, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
	}
}
