package appointments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// SheetsStore talks to the published spreadsheet web app. The endpoint takes
// POST {action, data} bodies for writes and GET ?action=getAppointments
// queries for reads; responses carry a data field on success.
type SheetsStore struct {
	apiURL string
	client *http.Client
}

// NewSheetsStore creates a store pointed at the web-app URL.
func NewSheetsStore(apiURL string, timeout time.Duration) *SheetsStore {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SheetsStore{
		apiURL: apiURL,
		client: &http.Client{Timeout: timeout},
	}
}

type sheetsRequest struct {
	Action string `json:"action"`
	Data   any    `json:"data"`
}

type sheetsResponse struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (s *SheetsStore) post(ctx context.Context, action string, data any) (*sheetsResponse, error) {
	body, err := json.Marshal(sheetsRequest{Action: action, Data: data})
	if err != nil {
		return nil, fmt.Errorf("sheets: marshal %s: %w", action, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("sheets: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheets: %s: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheets: %s: unexpected status %d", action, resp.StatusCode)
	}

	var out sheetsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("sheets: decode %s response: %w", action, err)
	}
	return &out, nil
}

// Add appends a new appointment row.
func (s *SheetsStore) Add(ctx context.Context, appt *Appointment) error {
	resp, err := s.post(ctx, "addAppointment", appt)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("sheets: addAppointment rejected: %s", resp.Error)
	}
	return nil
}

// List fetches appointments, optionally filtered by date.
func (s *SheetsStore) List(ctx context.Context, date string) ([]Appointment, error) {
	u, err := url.Parse(s.apiURL)
	if err != nil {
		return nil, fmt.Errorf("sheets: parse url: %w", err)
	}
	q := u.Query()
	q.Set("action", "getAppointments")
	if date != "" {
		q.Set("date", date)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("sheets: build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheets: getAppointments: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheets: getAppointments: unexpected status %d", resp.StatusCode)
	}

	var out sheetsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("sheets: decode list response: %w", err)
	}

	var appts []Appointment
	if len(out.Data) > 0 {
		if err := json.Unmarshal(out.Data, &appts); err != nil {
			return nil, fmt.Errorf("sheets: decode appointments: %w", err)
		}
	}
	return appts, nil
}

// UpdateStatus rewrites the status/stage columns of one row.
func (s *SheetsStore) UpdateStatus(ctx context.Context, id string, status Status, stage Stage) (*Appointment, error) {
	payload := map[string]string{
		"id":     id,
		"status": string(status),
	}
	if stage != "" {
		payload["followUpStage"] = string(stage)
	}
	resp, err := s.post(ctx, "updateStatus", payload)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		// The web app reports missing rows as a plain failure.
		return nil, ErrNotFound
	}
	var appt Appointment
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &appt); err != nil {
			return nil, fmt.Errorf("sheets: decode updated appointment: %w", err)
		}
	}
	return &appt, nil
}
