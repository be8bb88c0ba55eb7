package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdmitsSchedule(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		label Intent
		want  bool
	}{
		{
			name:  "label plus lexical plus time of day",
			line:  "let's schedule a meeting tomorrow at 2 pm",
			label: ScheduleMeeting,
			want:  true,
		},
		{
			name:  "weekday reference counts as temporal evidence",
			line:  "schedule the planning meeting next friday",
			label: ScheduleMeeting,
			want:  true,
		},
		{
			name:  "tomorrow alone counts as temporal evidence",
			line:  "we should schedule a quick meeting tomorrow",
			label: ScheduleMeeting,
			want:  true,
		},
		{
			name:  "no temporal evidence never admits",
			line:  "we should schedule a meeting soon",
			label: ScheduleMeeting,
			want:  false,
		},
		{
			name:  "mentioning a meeting in passing never admits",
			line:  "that meeting yesterday ran long, 3 pm is too late",
			label: ScheduleMeeting,
			want:  false,
		},
		{
			name:  "wrong label never admits",
			line:  "let's schedule a meeting tomorrow at 2 pm",
			label: SendMessage,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdmitsSchedule(tt.line, Classification{Intent: tt.label})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdmitsMessage(t *testing.T) {
	c := Classification{Intent: SendMessage}

	assert.True(t, AdmitsMessage("send a message to jo see you soon", c))
	assert.True(t, AdmitsMessage("text Maria that I'm late", c))
	assert.False(t, AdmitsMessage("tell him I'll be there", c), "no lexical token")
	assert.False(t, AdmitsMessage("send a message to jo", Classification{Intent: Other}))
}

func TestSuppressForcesMessageIntentWithoutToken(t *testing.T) {
	c := Suppress("tell him I'll be there", Classification{Intent: SendMessage})
	assert.Equal(t, None, c.Intent)

	// schedule labels pass through untouched; their check runs at trigger time
	c = Suppress("we might meet sometime", Classification{Intent: ScheduleMeeting})
	assert.Equal(t, ScheduleMeeting, c.Intent)

	c = Suppress("send word to the team", Classification{Intent: SendMessage})
	assert.Equal(t, SendMessage, c.Intent)
}
