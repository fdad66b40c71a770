package importer

import (
	"bytes"

	"github.com/tealeg/xlsx"

	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/models"
)

// TemplateFilename is the download name for the generated example workbook.
const TemplateFilename = "modele_import_notes.xlsx"

var templateExampleRow = []string{"2023001", "Alaoui", "Yasmine", "Mathematiques", "15.5"}

// BuildTemplateWorkbook generates the downloadable import template: the five
// required headers plus a single example row, in the native spreadsheet
// format.
func BuildTemplateWorkbook() ([]byte, error) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Notes")
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	for _, field := range models.RequiredFields {
		headerRow.AddCell().SetString(field)
	}

	exampleRow := sheet.AddRow()
	for _, value := range templateExampleRow {
		exampleRow.AddCell().SetString(value)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
