package importer

import (
	"strings"

	"github.com/tealeg/xlsx"

	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/models"
)

// parseWorkbook decodes a spreadsheet container and reads the first sheet
// only: first row is the header, every later row is one record. Legacy .xls
// files are accepted by extension and decoded best-effort; a container that
// is not actually a workbook surfaces as a parse failure.
func parseWorkbook(data []byte, format models.FileFormat) ([]models.Record, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, &ParseError{Format: format, Reason: err.Error()}
	}
	if len(f.Sheets) == 0 {
		return nil, &ParseError{Format: format, Reason: "workbook has no sheets"}
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, &ParseError{Format: format, Reason: "first sheet is empty"}
	}

	header := make([]string, len(sheet.Rows[0].Cells))
	for i, cell := range sheet.Rows[0].Cells {
		header[i] = strings.TrimSpace(cell.String())
	}

	var records []models.Record
	for _, row := range sheet.Rows[1:] {
		if isBlankRow(row) {
			continue
		}
		record := make(models.Record, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(row.Cells) {
				record[col] = strings.TrimSpace(row.Cells[i].String())
			} else {
				record[col] = ""
			}
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, &ParseError{Format: format, Reason: "no data rows after header"}
	}
	return records, nil
}

func isBlankRow(row *xlsx.Row) bool {
	for _, cell := range row.Cells {
		if strings.TrimSpace(cell.String()) != "" {
			return false
		}
	}
	return true
}
