package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aimea/internal/intent"
	"aimea/internal/workflow"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second)
}

func TestFetchBufferArrayMode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/buffer", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"buffer": []string{"first line", "second line"},
		})
	})

	lines, err := c.FetchBuffer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"first line", "second line"}, lines)
}

func TestFetchBufferStringMode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"buffer": "first line\nsecond line\n",
		})
	})

	lines, err := c.FetchBuffer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"first line", "second line"}, lines)
}

func TestClassify(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/classify", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "let's schedule a meeting tomorrow at 2 pm", req["text"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"intent":   "schedule_meeting",
			"language": "en",
			"topics":   []string{"planning"},
		})
	})

	got, err := c.Classify(context.Background(), "let's schedule a meeting tomorrow at 2 pm")
	require.NoError(t, err)
	assert.Equal(t, intent.ScheduleMeeting, got.Intent)
	assert.Equal(t, "en", got.Language)
	assert.Equal(t, []string{"planning"}, got.Topics)
}

func TestClassifyServiceError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "model unavailable"})
	})

	got, err := c.Classify(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "model unavailable", got.Error)
	assert.Equal(t, intent.None, got.Intent)
}

func TestScheduleMeeting(t *testing.T) {
	start := time.Date(2025, 6, 12, 14, 0, 0, 0, time.UTC)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/schedule", r.URL.Path)

		var req struct {
			Summary     string   `json:"summary"`
			Description string   `json:"description"`
			Start       string   `json:"start"`
			End         string   `json:"end"`
			Attendees   []string `json:"attendees"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Meeting: tomorrow at 2 pm", req.Summary)
		assert.Equal(t, start.Format(time.RFC3339), req.Start)
		assert.Equal(t, start.Add(30*time.Minute).Format(time.RFC3339), req.End)
		assert.NotNil(t, req.Attendees)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"event": map[string]string{"id": "evt-42"},
		})
	})

	id, err := c.ScheduleMeeting(context.Background(), workflow.MeetingDraft{
		Title:       "Meeting: tomorrow at 2 pm",
		Start:       start,
		End:         start.Add(30 * time.Minute),
		Description: "let's schedule a meeting tomorrow at 2 pm",
	})
	require.NoError(t, err)
	assert.Equal(t, "evt-42", id)
}

func TestScheduleMeetingServiceFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "calendar unreachable"})
	})

	_, err := c.ScheduleMeeting(context.Background(), workflow.MeetingDraft{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calendar unreachable")
}

func TestSendMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/message", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Joanna Lee", req["recipient"])
		assert.Equal(t, "see you soon", req["body"])
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.SendMessage(context.Background(), "Joanna Lee", "see you soon"))
}

func TestCatalogsAndContacts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/devices":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"devices": []map[string]string{{"name": "Built-in Mic"}},
			})
		case "/languages":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"languages": []map[string]string{{"value": "en", "label": "English"}},
			})
		case "/contacts":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"contacts": []string{"John Smith", "Joanna Lee"},
			})
		default:
			http.NotFound(w, r)
		}
	})

	devices, err := c.ListDevices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Device{{Name: "Built-in Mic"}}, devices)

	languages, err := c.ListLanguages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Language{{Value: "en", Label: "English"}}, languages)

	contacts, err := c.ListContacts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"John Smith", "Joanna Lee"}, contacts)
}

func TestSelectDeviceAndLanguage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/device":
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Built-in Mic", req["device"])
			w.WriteHeader(http.StatusOK)
		case "/language":
			_ = json.NewEncoder(w).Encode(map[string]string{"language": "en"})
		default:
			http.NotFound(w, r)
		}
	})

	require.NoError(t, c.SelectDevice(context.Background(), "Built-in Mic"))

	lang, err := c.SelectLanguage(context.Background(), "en")
	require.NoError(t, err)
	assert.Equal(t, "en", lang)
}

func TestFetchSummary(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"summary": "short recap"})
	})

	summary, err := c.FetchSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "short recap", summary)
}

func TestFetchSummaryServiceError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "no content"})
	})

	_, err := c.FetchSummary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content")
}

func TestNon2xxWithoutErrorPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.FetchBuffer(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}
