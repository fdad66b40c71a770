package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/models"
)

// ParseError reports malformed content for a detected format. Like an
// unsupported extension it is terminal for that file.
type ParseError struct {
	Format models.FileFormat
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s file: %s", e.Format, e.Reason)
}

// Parse decodes the file content into an ordered sequence of records using
// the parser for the detected format. It never touches session state; the
// caller integrates the result.
func Parse(data []byte, format models.FileFormat) ([]models.Record, error) {
	switch format {
	case models.DelimitedText:
		return parseCSV(data)
	case models.SpreadsheetXML, models.SpreadsheetBinary:
		return parseWorkbook(data, format)
	case models.StructuredMarkup:
		return parseXML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}
}

// parseCSV treats the first line as the header and every following line as
// one record. A header-only or empty file is a parse failure, never an empty
// success.
func parseCSV(data []byte) ([]models.Record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // short rows become empty cells
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ParseError{Format: models.DelimitedText, Reason: "file is empty"}
	}
	if err != nil {
		return nil, &ParseError{Format: models.DelimitedText, Reason: err.Error()}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []models.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Format: models.DelimitedText, Reason: err.Error()}
		}
		record := make(models.Record, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(row) {
				record[col] = strings.TrimSpace(row[i])
			} else {
				record[col] = ""
			}
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, &ParseError{Format: models.DelimitedText, Reason: "no data rows after header"}
	}
	return records, nil
}

// xmlNode is a schema-free view of an XML document: each child of the root
// becomes one record, its child element names become columns.
type xmlNode struct {
	XMLName xml.Name
	Content string    `xml:",chardata"`
	Nodes   []xmlNode `xml:",any"`
}

func parseXML(data []byte) ([]models.Record, error) {
	var root xmlNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Format: models.StructuredMarkup, Reason: err.Error()}
	}
	if len(root.Nodes) == 0 {
		return nil, &ParseError{Format: models.StructuredMarkup, Reason: "no row elements under document root"}
	}

	var records []models.Record
	for _, row := range root.Nodes {
		record := make(models.Record, len(row.Nodes))
		for _, cell := range row.Nodes {
			record[cell.XMLName.Local] = strings.TrimSpace(cell.Content)
		}
		if len(record) > 0 {
			records = append(records, record)
		}
	}
	if len(records) == 0 {
		return nil, &ParseError{Format: models.StructuredMarkup, Reason: "no data rows"}
	}
	return records, nil
}
