// Package intent holds the classification domain types and the evidence gate
// that decides whether a classifier label is backed by enough lexical and
// temporal evidence to act on.
package intent

// Intent is the actionable label the classification service attaches to a
// transcript line.
type Intent string

const (
	ScheduleMeeting Intent = "schedule_meeting"
	SendMessage     Intent = "send_message"
	Other           Intent = "other"
	None            Intent = ""
)

// Classification is the per-line result returned by the classification
// service. Transient; never persisted.
type Classification struct {
	Intent   Intent   `json:"intent,omitempty"`
	Language string   `json:"language,omitempty"`
	Topics   []string `json:"topics,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Actionable reports whether the classification carries a label the
// dispatcher might act on.
func (c Classification) Actionable() bool {
	return c.Intent == ScheduleMeeting || c.Intent == SendMessage
}
