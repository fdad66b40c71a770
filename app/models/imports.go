package models

import "time"

// FileFormat identifies the parser that applies to a selected file.
type FileFormat string

const (
	SpreadsheetBinary FileFormat = "xls"
	SpreadsheetXML    FileFormat = "xlsx"
	DelimitedText     FileFormat = "csv"
	StructuredMarkup  FileFormat = "xml"
)

// ImportStatus defines the possible outcomes of an import attempt.
type ImportStatus string

const (
	ImportSuccess ImportStatus = "success"
	ImportFailure ImportStatus = "failure"
)

// SourceFile is the operator-selected file held by the session between
// selection and upload. Data is the full content; Name and Size come from
// the multipart header.
type SourceFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Data []byte `json:"-"`
}

// ImportAttempt is one historical submission outcome, mirrored from the
// backend. Attempts are append-only; the client never mutates one in place.
type ImportAttempt struct {
	ID        string       `json:"id"`
	Filename  string       `json:"filename"`
	Year      string       `json:"year"`
	Timestamp time.Time    `json:"timestamp"`
	Status    ImportStatus `json:"status"`
}

// AcademicYear mirrors the backend's school-year entry.
type AcademicYear struct {
	ID        string `json:"id,omitempty"`
	Year      string `json:"year"`
	IsCurrent bool   `json:"is_current"`
}
