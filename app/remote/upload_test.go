package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/models"
)

func testFile() models.SourceFile {
	content := []byte("Matricule,Nom,Prenom,Matiere,Note\n2023001,Alaoui,Yasmine,Maths,15\n")
	return models.SourceFile{Name: "notes.csv", Size: int64(len(content)), Data: content}
}

func TestUploadImportFileSuccess(t *testing.T) {
	var gotYear, gotFilename string
	var gotContent []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotYear = r.FormValue("year")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		gotContent, _ = io.ReadAll(file)

		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "id": "imp-42"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	attempt, err := client.UploadImportFile(context.Background(), testFile(), "2023-2024", nil)
	require.NoError(t, err)

	assert.Equal(t, "2023-2024", gotYear)
	assert.Equal(t, "notes.csv", gotFilename)
	assert.Equal(t, testFile().Data, gotContent)

	assert.Equal(t, "imp-42", attempt.ID)
	assert.Equal(t, "notes.csv", attempt.Filename)
	assert.Equal(t, "2023-2024", attempt.Year)
	assert.Equal(t, models.ImportSuccess, attempt.Status)
}

func TestUploadImportFileProgress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
	defer server.Close()

	var percents []int
	client := NewClient(server.URL, "")
	attempt, err := client.UploadImportFile(context.Background(), testFile(), "2023-2024", func(p int) {
		percents = append(percents, p)
	})
	require.NoError(t, err)
	assert.NotEmpty(t, attempt.ID, "a fallback id is generated when the server omits one")

	require.NotEmpty(t, percents)
	for i := 1; i < len(percents); i++ {
		assert.GreaterOrEqual(t, percents[i], percents[i-1])
	}
	assert.Equal(t, 100, percents[len(percents)-1])
}

func TestUploadImportFileSuccessFlagRequired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		// HTTP 200 but no success flag: still a refusal.
		json.NewEncoder(w).Encode(map[string]interface{}{"message": "quota exceeded"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.UploadImportFile(context.Background(), testFile(), "2023-2024", nil)

	var rejectedErr *UploadRejectedError
	require.ErrorAs(t, err, &rejectedErr)
	assert.Equal(t, "quota exceeded", rejectedErr.Message)
}

func TestUploadImportFileClassification(t *testing.T) {
	tests := []struct {
		status int
		kind   RejectionKind
	}{
		{http.StatusRequestEntityTooLarge, RejectPayloadTooLarge},
		{http.StatusUnsupportedMediaType, RejectUnsupportedMedia},
		{http.StatusBadRequest, RejectMalformedPayload},
		{http.StatusUnauthorized, RejectSessionExpired},
		{http.StatusForbidden, RejectSessionExpired},
		{http.StatusInternalServerError, RejectServerFault},
		{http.StatusBadGateway, RejectServerFault},
	}
	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.Copy(io.Discard, r.Body)
			w.WriteHeader(tt.status)
		}))

		client := NewClient(server.URL, "")
		_, err := client.UploadImportFile(context.Background(), testFile(), "2023-2024", nil)
		server.Close()

		var rejectedErr *UploadRejectedError
		require.ErrorAs(t, err, &rejectedErr, "status %d", tt.status)
		assert.Equal(t, tt.kind, rejectedErr.Kind, "status %d", tt.status)
		assert.NotEmpty(t, rejectedErr.Error())
	}
}

func TestUploadImportFileNetworkUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	client := NewClient(server.URL, "")
	_, err := client.UploadImportFile(context.Background(), testFile(), "2023-2024", nil)

	var networkErr *NetworkError
	assert.ErrorAs(t, err, &networkErr)
}

func TestFetchImportHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/import/history", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]models.ImportAttempt{{ID: "1", Filename: "notes.csv", Status: models.ImportSuccess}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	attempts, err := client.FetchImportHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, "notes.csv", attempts[0].Filename)
}

func TestRegisterAcademicYear(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/academic-years", r.URL.Path)
		var body models.AcademicYear
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2023-2024", body.Year)
		assert.True(t, body.IsCurrent)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	assert.NoError(t, client.RegisterAcademicYear(context.Background(), "2023-2024", true))
}

func TestRegisterAcademicYearRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "year already exists"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	err := client.RegisterAcademicYear(context.Background(), "2023-2024", false)
	assert.ErrorContains(t, err, "year already exists")
}
