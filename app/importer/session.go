package importer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/cache"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/models"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/notify"
)

// PreviewSize caps how many parsed records are kept for the operator to
// inspect before confirming an upload.
const PreviewSize = 5

// State identifies where the import session is in its lifecycle.
type State string

const (
	StateIdle             State = "idle"
	StatePreviewedValid   State = "previewed_valid"
	StatePreviewedInvalid State = "previewed_invalid"
	StateUploading        State = "uploading"
)

// Guard errors surfaced to the operator with distinct messages.
var (
	ErrUploadInFlight = errors.New("an import is already in progress, wait for it to finish")
	ErrNoFileSelected = errors.New("no file selected")
	ErrEmptyFile      = errors.New("the selected file is empty")
	ErrNoYearSelected = errors.New("no academic year selected")
	ErrNotValidated   = errors.New("the selected file has validation issues and cannot be uploaded")
)

// Uploader is the slice of the backend client the session needs.
type Uploader interface {
	UploadImportFile(ctx context.Context, file models.SourceFile, year string, onProgress func(percent int)) (*models.ImportAttempt, error)
}

// Refresher reconciles the import history after a submission.
type Refresher interface {
	Refresh(ctx context.Context) []models.ImportAttempt
}

// Session is the orchestrating state machine for one operator's import. It
// owns the selected file, the parse and validation outcome, the bounded
// preview, and the upload progress.
type Session struct {
	uploader Uploader
	history  Refresher
	sink     *notify.Sink
	cache    *cache.Store

	mu       sync.Mutex
	state    State
	file     *models.SourceFile
	records  []models.Record
	preview  []models.Record
	issues   []ValidationIssue
	progress int
}

// NewSession wires a session over its collaborators. cache may be nil when
// preview persistence is not wanted.
func NewSession(uploader Uploader, history Refresher, sink *notify.Sink, c *cache.Store) *Session {
	return &Session{
		uploader: uploader,
		history:  history,
		sink:     sink,
		cache:    c,
		state:    StateIdle,
	}
}

// Snapshot is a read-only view of the session for the UI surface. Preview is
// only populated once the record set passed validation.
type Snapshot struct {
	State    State             `json:"state"`
	Filename string            `json:"filename,omitempty"`
	FileSize int64             `json:"file_size,omitempty"`
	Ready    bool              `json:"ready"`
	Preview  []models.Record   `json:"preview,omitempty"`
	Issues   []ValidationIssue `json:"issues,omitempty"`
	Progress int               `json:"progress"`
}

// SelectFile replaces the current selection, detects the file's format,
// parses it, and validates the result. Parse and validation problems land in
// the session as issues, not as returned errors; the only rejection is an
// upload already in flight.
func (s *Session) SelectFile(file models.SourceFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateUploading {
		return ErrUploadInFlight
	}

	// A new selection always drops the previous outcome.
	s.file = &file
	s.records = nil
	s.preview = nil
	s.issues = nil
	s.progress = 0

	format, err := DetectFormat(file.Name)
	if err != nil {
		s.failSelection(err.Error())
		return nil
	}

	records, err := Parse(file.Data, format)
	if err != nil {
		s.failSelection(err.Error())
		return nil
	}

	s.records = records
	s.preview = records
	if len(s.preview) > PreviewSize {
		s.preview = s.preview[:PreviewSize]
	}

	s.issues = ValidateRecords(records)
	if len(s.issues) > 0 {
		s.state = StatePreviewedInvalid
		s.sink.Error(fmt.Sprintf("%q has %d validation issue(s)", file.Name, len(s.issues)))
	} else {
		s.state = StatePreviewedValid
		s.sink.Info(fmt.Sprintf("%q parsed: %d record(s) ready to import", file.Name, len(records)))
		s.persistPreview()
	}
	return nil
}

// ConfirmUpload submits the currently selected file for the given academic
// year. On success the history store is refreshed and the session returns to
// idle; on failure the selection and preview are kept so the operator can
// retry without re-choosing the file.
func (s *Session) ConfirmUpload(ctx context.Context, year string) error {
	s.mu.Lock()
	if s.state == StateUploading {
		s.mu.Unlock()
		return ErrUploadInFlight
	}
	if s.file == nil {
		s.mu.Unlock()
		return ErrNoFileSelected
	}
	if s.file.Size == 0 && len(s.file.Data) == 0 {
		s.mu.Unlock()
		return ErrEmptyFile
	}
	if year == "" {
		s.mu.Unlock()
		return ErrNoYearSelected
	}
	if s.state != StatePreviewedValid {
		s.mu.Unlock()
		return ErrNotValidated
	}

	file := *s.file
	s.state = StateUploading
	s.progress = 0
	s.mu.Unlock()

	// The network call happens outside the lock so progress polls and
	// snapshots stay responsive.
	attempt, err := s.uploader.UploadImportFile(ctx, file, year, s.setProgress)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		// Keep file and preview intact for a retry.
		s.state = StatePreviewedValid
		s.progress = 0
		s.sink.Error("Import failed: " + err.Error())
		return err
	}

	s.sink.Success(fmt.Sprintf("%q imported for %s", attempt.Filename, attempt.Year))
	s.history.Refresh(ctx)
	s.resetLocked()
	return nil
}

// Clear drops the file, preview, issues, and progress unconditionally.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// Snapshot returns the current session view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:    s.state,
		Ready:    s.state == StatePreviewedValid,
		Issues:   s.issues,
		Progress: s.progress,
	}
	if s.file != nil {
		snap.Filename = s.file.Name
		snap.FileSize = s.file.Size
	}
	if s.state == StatePreviewedValid {
		snap.Preview = s.preview
	}
	return snap
}

// Progress returns the current upload percentage.
func (s *Session) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// setProgress keeps the reported percentage monotonic within one upload.
func (s *Session) setProgress(percent int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if percent > s.progress && percent <= 100 {
		s.progress = percent
	}
}

func (s *Session) failSelection(message string) {
	s.state = StatePreviewedInvalid
	s.issues = []ValidationIssue{{Message: message}}
	s.sink.Error(message)
	s.dropPreview()
}

func (s *Session) resetLocked() {
	s.state = StateIdle
	s.file = nil
	s.records = nil
	s.preview = nil
	s.issues = nil
	s.progress = 0
	s.dropPreview()
}

func (s *Session) persistPreview() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(cache.KeyLastPreview, s.preview); err != nil {
		s.sink.Info("could not persist preview: " + err.Error())
	}
}

func (s *Session) dropPreview() {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(cache.KeyLastPreview)
}
