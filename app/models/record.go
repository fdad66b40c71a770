package models

// Required columns every imported record set must carry. Files exported from
// the school registry use these exact French headers.
const (
	FieldMatricule = "Matricule"
	FieldNom       = "Nom"
	FieldPrenom    = "Prenom"
	FieldMatiere   = "Matiere"
	FieldNote      = "Note"
)

// RequiredFields lists the closed schema for an import file. Extra columns
// are tolerated but never required.
var RequiredFields = []string{FieldMatricule, FieldNom, FieldPrenom, FieldMatiere, FieldNote}

// Record is one parsed data row, keyed by column header. Cell values are kept
// raw; trimming and typing happen during validation.
type Record map[string]string

// Get returns the raw cell value for a column and whether the column exists.
func (r Record) Get(column string) (string, bool) {
	v, ok := r[column]
	return v, ok
}

// Has reports whether the record carries a value for the column.
func (r Record) Has(column string) bool {
	_, ok := r[column]
	return ok
}

// Matricule returns the student registration number cell.
func (r Record) Matricule() string { return r[FieldMatricule] }

// Nom returns the student last-name cell.
func (r Record) Nom() string { return r[FieldNom] }

// Prenom returns the student first-name cell.
func (r Record) Prenom() string { return r[FieldPrenom] }

// Matiere returns the subject cell.
func (r Record) Matiere() string { return r[FieldMatiere] }

// Note returns the raw score cell.
func (r Record) Note() string { return r[FieldNote] }

// Extras returns the columns that are not part of the required schema.
func (r Record) Extras() map[string]string {
	extras := make(map[string]string)
	for col, val := range r {
		if !isRequiredField(col) {
			extras[col] = val
		}
	}
	return extras
}

// Columns returns the set of column names present on the record.
func (r Record) Columns() []string {
	cols := make([]string, 0, len(r))
	for col := range r {
		cols = append(cols, col)
	}
	return cols
}

func isRequiredField(column string) bool {
	for _, f := range RequiredFields {
		if f == column {
			return true
		}
	}
	return false
}
