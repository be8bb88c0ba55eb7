// Package backend is the HTTP client for the transcription backend: the live
// buffer, the device/language catalogs, per-line classification, and the two
// side-effect services (calendar scheduling, message dispatch).
//
// All calls are plain request/response JSON over a local network interface.
// Failures are returned to the caller; retry policy (none, next poll tries
// again) belongs to the polling loop.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"aimea/internal/intent"
	"aimea/internal/workflow"
)

// Device is an audio input device known to the backend.
type Device struct {
	Name string `json:"name"`
}

// Language is a transcription language option.
type Language struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Client talks to one backend instance.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New returns a client for the backend at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// ListDevices fetches the audio input device catalog.
func (c *Client) ListDevices(ctx context.Context) ([]Device, error) {
	var out struct {
		Devices []Device `json:"devices"`
	}
	if err := c.get(ctx, "/devices", &out); err != nil {
		return nil, err
	}
	return out.Devices, nil
}

// SelectDevice asks the backend to capture from the named device.
func (c *Client) SelectDevice(ctx context.Context, name string) error {
	return c.post(ctx, "/device", map[string]string{"device": name}, nil)
}

// ListLanguages fetches the transcription language catalog.
func (c *Client) ListLanguages(ctx context.Context) ([]Language, error) {
	var out struct {
		Languages []Language `json:"languages"`
	}
	if err := c.get(ctx, "/languages", &out); err != nil {
		return nil, err
	}
	return out.Languages, nil
}

// SelectLanguage sets the transcription language and returns the value the
// backend settled on.
func (c *Client) SelectLanguage(ctx context.Context, value string) (string, error) {
	var out struct {
		Language string `json:"language"`
	}
	if err := c.post(ctx, "/language", map[string]string{"language": value}, &out); err != nil {
		return "", err
	}
	return out.Language, nil
}

// FetchBuffer returns the current transcript buffer, newest line last.
// The backend serves either an array of lines or, in a simpler mode, one
// concatenated string; both are normalized to a line slice.
func (c *Client) FetchBuffer(ctx context.Context) ([]string, error) {
	var out struct {
		Buffer json.RawMessage `json:"buffer"`
	}
	if err := c.get(ctx, "/buffer", &out); err != nil {
		return nil, err
	}
	if len(out.Buffer) == 0 {
		return nil, nil
	}

	var lines []string
	if err := json.Unmarshal(out.Buffer, &lines); err == nil {
		return lines, nil
	}
	var joined string
	if err := json.Unmarshal(out.Buffer, &joined); err != nil {
		return nil, fmt.Errorf("unexpected buffer payload: %s", out.Buffer)
	}
	for _, line := range strings.Split(joined, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// Classify sends one transcript line to the classification service.
// A service-reported error arrives inside the result, not as a Go error.
func (c *Client) Classify(ctx context.Context, text string) (intent.Classification, error) {
	var out intent.Classification
	if err := c.post(ctx, "/classify", map[string]string{"text": text}, &out); err != nil {
		return intent.Classification{}, err
	}
	return out, nil
}

// FetchSummary returns the backend's summary of the current buffer.
func (c *Client) FetchSummary(ctx context.Context) (string, error) {
	var out struct {
		Summary string `json:"summary"`
		Error   string `json:"error"`
	}
	if err := c.get(ctx, "/summary", &out); err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", fmt.Errorf("summary service: %s", out.Error)
	}
	return out.Summary, nil
}

// ListContacts fetches the contact catalog for recipient resolution.
func (c *Client) ListContacts(ctx context.Context) ([]string, error) {
	var out struct {
		Contacts []string `json:"contacts"`
	}
	if err := c.get(ctx, "/contacts", &out); err != nil {
		return nil, err
	}
	return out.Contacts, nil
}

// ScheduleMeeting submits a confirmed meeting draft and returns the created
// event identifier.
func (c *Client) ScheduleMeeting(ctx context.Context, draft workflow.MeetingDraft) (string, error) {
	attendees := draft.Attendees
	if attendees == nil {
		attendees = []string{}
	}
	req := map[string]interface{}{
		"summary":     draft.Title,
		"description": draft.Description,
		"start":       draft.Start.Format(time.RFC3339),
		"end":         draft.End.Format(time.RFC3339),
		"attendees":   attendees,
	}

	var out struct {
		Event struct {
			ID string `json:"id"`
		} `json:"event"`
	}
	if err := c.post(ctx, "/schedule", req, &out); err != nil {
		return "", err
	}
	return out.Event.ID, nil
}

// SendMessage submits a confirmed message.
func (c *Client) SendMessage(ctx context.Context, recipient, body string) error {
	return c.post(ctx, "/message", map[string]string{
		"recipient": recipient,
		"body":      body,
	}, nil)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", req.Method, req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
			return fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, payload.Error)
		}
		return fmt.Errorf("%s %s: unexpected status %d", req.Method, req.URL.Path, resp.StatusCode)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
