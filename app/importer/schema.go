package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/models"
)

// Score bounds for the Note column (French grading scale).
const (
	MinNote = 0
	MaxNote = 20
)

// ValidationIssue is one problem found in a record set. Row is 1-based for
// row-scoped issues and 0 for whole-file issues.
type ValidationIssue struct {
	Row     int    `json:"row,omitempty"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

func (i ValidationIssue) String() string {
	if i.Row > 0 {
		return fmt.Sprintf("row %d: %s", i.Row, i.Message)
	}
	return i.Message
}

// ValidateRecords checks a parsed record set against the required columns and
// the per-field business rules. Issues accumulate across the whole pass; an
// empty result means the set is ready for upload.
func ValidateRecords(records []models.Record) []ValidationIssue {
	var issues []ValidationIssue

	if len(records) == 0 {
		return append(issues, ValidationIssue{Message: "file contains no records"})
	}

	// The header is whatever columns the first record carries.
	var missing []string
	for _, field := range models.RequiredFields {
		if !records[0].Has(field) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		issues = append(issues, ValidationIssue{
			Message: "missing required columns: " + strings.Join(missing, ", "),
		})
	}

	for idx, record := range records {
		row := idx + 1
		for _, field := range models.RequiredFields {
			value, ok := record.Get(field)
			if !ok {
				continue // already reported as a missing column
			}
			if strings.TrimSpace(value) == "" {
				issues = append(issues, ValidationIssue{
					Row:     row,
					Field:   field,
					Message: fmt.Sprintf("field %s is empty", field),
				})
			}
		}

		if raw, ok := record.Get(models.FieldNote); ok && strings.TrimSpace(raw) != "" {
			note, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil || note < MinNote || note > MaxNote {
				issues = append(issues, ValidationIssue{
					Row:     row,
					Field:   models.FieldNote,
					Value:   raw,
					Message: fmt.Sprintf("invalid note value %q (expected a number between %d and %d)", raw, MinNote, MaxNote),
				})
			}
		}
	}

	return issues
}
