package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Wednesday 2025-06-11 10:30 local
var now = time.Date(2025, 6, 11, 10, 30, 0, 0, time.Local)

func TestExtractSchedulePhrase(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "plain trailing phrase",
			line: "let's schedule a meeting tomorrow at 2 pm",
			want: "tomorrow at 2 pm",
		},
		{
			name: "for connective is dropped",
			line: "schedule the sync meeting for next monday at 9 am",
			want: "next monday at 9 am",
		},
		{
			name: "on connective is dropped",
			line: "please schedule a meeting on friday",
			want: "friday",
		},
		{
			name: "trailing punctuation stripped",
			line: "schedule a meeting at 3 pm.",
			want: "at 3 pm",
		},
		{
			name: "no phrase after pattern",
			line: "we should schedule a meeting",
			want: "",
		},
		{
			name: "no pattern at all",
			line: "the meeting yesterday went fine",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSchedulePhrase(tt.line))
		})
	}
}

func TestBuildMeetingDraftFromParsedPhrase(t *testing.T) {
	d := BuildMeetingDraft("let's schedule a meeting tomorrow at 2 pm", now, 30*time.Minute)

	assert.Equal(t, "Meeting: tomorrow at 2 pm", d.Title)
	assert.Equal(t, time.Date(2025, 6, 12, 14, 0, 0, 0, time.Local), d.Start)
	assert.Equal(t, d.Start.Add(30*time.Minute), d.End)
	assert.Equal(t, "let's schedule a meeting tomorrow at 2 pm", d.Description)
	assert.Empty(t, d.Attendees)
}

func TestBuildMeetingDraftFallsBackToNow(t *testing.T) {
	d := BuildMeetingDraft("we should schedule a meeting", now, 30*time.Minute)

	assert.Equal(t, FallbackTitle, d.Title)
	assert.Equal(t, now, d.Start)
	assert.Equal(t, now.Add(30*time.Minute), d.End)
}

func TestBuildMeetingDraftWeekday(t *testing.T) {
	d := BuildMeetingDraft("schedule the sync meeting for next monday at 9 am", now, time.Hour)

	assert.Equal(t, time.Date(2025, 6, 16, 9, 0, 0, 0, time.Local), d.Start)
	assert.Equal(t, time.Date(2025, 6, 16, 10, 0, 0, 0, time.Local), d.End)
}
