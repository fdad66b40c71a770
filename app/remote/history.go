package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/models"
)

// FetchImportHistory returns the backend's list of past import attempts.
func (c *Client) FetchImportHistory(ctx context.Context) ([]models.ImportAttempt, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/import/history", nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, unexpectedStatus(resp.StatusCode)
	}

	var attempts []models.ImportAttempt
	if err := json.NewDecoder(resp.Body).Decode(&attempts); err != nil {
		return nil, fmt.Errorf("decoding import history: %w", err)
	}
	return attempts, nil
}

// FetchAcademicYears returns the registered academic years.
func (c *Client) FetchAcademicYears(ctx context.Context) ([]models.AcademicYear, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/academic-years", nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, unexpectedStatus(resp.StatusCode)
	}

	var years []models.AcademicYear
	if err := json.NewDecoder(resp.Body).Decode(&years); err != nil {
		return nil, fmt.Errorf("decoding academic years: %w", err)
	}
	return years, nil
}

// RegisterAcademicYear registers a new academic year with the backend.
func (c *Client) RegisterAcademicYear(ctx context.Context, year string, isCurrent bool) error {
	payload, err := json.Marshal(models.AcademicYear{Year: year, IsCurrent: isCurrent})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/academic-years", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	var parsed importResponse
	_ = json.NewDecoder(resp.Body).Decode(&parsed)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return rejected(resp.StatusCode, parsed.Message)
	}
	if !parsed.Success {
		return rejected(resp.StatusCode, parsed.Message)
	}
	return nil
}
