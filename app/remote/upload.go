package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/models"
)

// importResponse is the backend's answer to an import submission. Success is
// judged by the explicit flag, never by the HTTP status alone.
type importResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// UploadImportFile submits the raw source file plus the chosen academic year
// as a multipart payload. onProgress, when non-nil, receives the percentage
// of the request body written so far; values are non-decreasing and a
// terminal outcome is always returned exactly once.
func (c *Client) UploadImportFile(ctx context.Context, file models.SourceFile, year string, onProgress func(percent int)) (*models.ImportAttempt, error) {
	if c.SessionExpired() {
		return nil, &UploadRejectedError{Kind: RejectSessionExpired, StatusCode: http.StatusUnauthorized, Message: rejectionMessages[RejectSessionExpired]}
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, err
	}
	if err := writer.WriteField("year", year); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	total := int64(body.Len())
	reader := &progressReader{r: &body, total: total, report: onProgress}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/import", reader)
	if err != nil {
		return nil, err
	}
	req.ContentLength = total
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(resp.Body)

	var parsed importResponse
	_ = json.Unmarshal(payload, &parsed)

	if resp.StatusCode != http.StatusOK {
		return nil, rejected(resp.StatusCode, parsed.Message)
	}
	if !parsed.Success {
		// A 200 without the success flag is still a refusal.
		return nil, rejected(http.StatusOK, parsed.Message)
	}

	attempt := &models.ImportAttempt{
		ID:        parsed.ID,
		Filename:  file.Name,
		Year:      year,
		Timestamp: time.Now(),
		Status:    models.ImportSuccess,
	}
	if attempt.ID == "" {
		attempt.ID = uuid.New().String()
	}
	return attempt, nil
}

// progressReader reports how much of the request body has been written so
// far, as a floor percentage of the total.
type progressReader struct {
	r      io.Reader
	total  int64
	sent   int64
	report func(int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.sent += int64(n)
	if p.report != nil && p.total > 0 && n > 0 {
		p.report(int(p.sent * 100 / p.total))
	}
	return n, err
}
