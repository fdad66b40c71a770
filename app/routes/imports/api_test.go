package imports

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/cache"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/history"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/importer"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/models"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/notify"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/remote"
)

const testCSV = "Matricule,Nom,Prenom,Matiere,Note\n" +
	"2023001,Alaoui,Yasmine,Maths,15.5\n" +
	"2023002,Bennani,Omar,Physique,12\n" +
	"2023003,Chafik,Lina,Chimie,18\n" +
	"2023004,Drissi,Adam,Maths,9.25\n" +
	"2023005,El Fassi,Sara,Francais,14\n"

// testBackend fakes the statistics API: it records submissions and serves
// them back from the history endpoint.
type testBackend struct {
	uploads  int
	attempts []models.ImportAttempt
}

func (b *testBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/import", func(w http.ResponseWriter, r *http.Request) {
		b.uploads++
		_ = r.ParseMultipartForm(1 << 20)
		_, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		b.attempts = append(b.attempts, models.ImportAttempt{
			ID:       "imp-1",
			Filename: header.Filename,
			Year:     r.FormValue("year"),
			Status:   models.ImportSuccess,
		})
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "id": "imp-1"})
	})
	mux.HandleFunc("/import/history", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(b.attempts)
	})
	return mux
}

func newTestApp(t *testing.T, backendURL string) (*fiber.App, *history.Store) {
	t.Helper()

	store, err := cache.NewStore(t.TempDir())
	require.NoError(t, err)

	client := remote.NewClient(backendURL, "")
	historyStore := history.NewStore(client, store)
	sink := notify.NewSink()
	session := importer.NewSession(client, historyStore, sink, store)

	app := fiber.New()
	RegisterRoutes(app, session, historyStore, sink)
	return app, historyStore
}

func multipartFile(t *testing.T, name, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestImportEndToEnd(t *testing.T) {
	backend := &testBackend{}
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	app, historyStore := newTestApp(t, server.URL)

	// Select a well-formed file.
	body, contentType := multipartFile(t, "notes.csv", testCSV)
	req := httptest.NewRequest(http.MethodPost, "/api/imports/file", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap importer.Snapshot
	decodeBody(t, resp, &snap)
	assert.Equal(t, importer.StatePreviewedValid, snap.State)
	assert.True(t, snap.Ready)
	assert.Len(t, snap.Preview, 5)

	// Confirm the upload for a chosen year.
	req = httptest.NewRequest(http.MethodPost, "/api/imports/confirm", strings.NewReader(`{"year":"2023-2024"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, 1, backend.uploads)

	// The history store now holds the new attempt.
	attempts := historyStore.List()
	require.Len(t, attempts, 1)
	assert.Equal(t, "notes.csv", attempts[0].Filename)
	assert.Equal(t, "2023-2024", attempts[0].Year)
}

func TestImportInvalidFileBlocksConfirm(t *testing.T) {
	backend := &testBackend{}
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	app, _ := newTestApp(t, server.URL)

	content := "Matricule,Nom,Prenom,Matiere\n2023001,Alaoui,Yasmine,Maths\n"
	body, contentType := multipartFile(t, "notes.csv", content)
	req := httptest.NewRequest(http.MethodPost, "/api/imports/file", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)

	var snap importer.Snapshot
	decodeBody(t, resp, &snap)
	assert.Equal(t, importer.StatePreviewedInvalid, snap.State)
	require.Len(t, snap.Issues, 1)
	assert.Contains(t, snap.Issues[0].Message, models.FieldNote)
	assert.Empty(t, snap.Preview)

	req = httptest.NewRequest(http.MethodPost, "/api/imports/confirm", strings.NewReader(`{"year":"2023-2024"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	assert.Zero(t, backend.uploads, "an invalid file must never reach the network")
}

func TestConfirmWithoutFile(t *testing.T) {
	server := httptest.NewServer(http.NewServeMux())
	defer server.Close()
	app, _ := newTestApp(t, server.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/imports/confirm", strings.NewReader(`{"year":"2023-2024"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, importer.ErrNoFileSelected.Error(), body["error"])
}

func TestTemplateDownload(t *testing.T) {
	server := httptest.NewServer(http.NewServeMux())
	defer server.Close()
	app, _ := newTestApp(t, server.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/imports/template", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), importer.TemplateFilename)

	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	records, err := importer.Parse(data, models.SpreadsheetXML)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, importer.ValidateRecords(records))
}

func TestNotificationsDrain(t *testing.T) {
	backend := &testBackend{}
	server := httptest.NewServer(backend.handler())
	defer server.Close()
	app, _ := newTestApp(t, server.URL)

	body, contentType := multipartFile(t, "notes.csv", testCSV)
	req := httptest.NewRequest(http.MethodPost, "/api/imports/file", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()

	req = httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)

	var notifications []models.Notification
	decodeBody(t, resp, &notifications)
	require.NotEmpty(t, notifications)

	// A second poll finds the sink drained.
	req = httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	notifications = nil
	decodeBody(t, resp, &notifications)
	assert.Empty(t, notifications)
}
