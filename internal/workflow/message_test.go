package workflow

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestExtractMessageParts(t *testing.T) {
	tests := []struct {
		name          string
		line          string
		wantRecipient string
		wantBody      string
		wantOK        bool
	}{
		{
			name:          "plain pattern",
			line:          "send a message to jo see you soon",
			wantRecipient: "jo",
			wantBody:      "see you soon",
			wantOK:        true,
		},
		{
			name:          "without article",
			line:          "send message to maria, running late",
			wantRecipient: "maria",
			wantBody:      "running late",
			wantOK:        true,
		},
		{
			name:          "recipient only",
			line:          "send a message to bob",
			wantRecipient: "bob",
			wantBody:      "",
			wantOK:        true,
		},
		{
			name:   "no pattern",
			line:   "I'll message him later",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipient, body, ok := ExtractMessageParts(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRecipient, recipient)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestResolveContacts(t *testing.T) {
	contacts := []string{"John Smith", "Joanna Lee", "Bob Jones"}

	// "Jones" starts with "jo" too, so Bob Jones is included but ranks after
	// the full-name prefix matches
	got := ResolveContacts("jo", contacts)
	want := []string{"Joanna Lee", "John Smith", "Bob Jones"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected match order (-want +got):\n%s", diff)
	}
}

func TestResolveContactsSingleAndNone(t *testing.T) {
	contacts := []string{"John Smith", "Joanna Lee", "Bob Jones"}

	assert.Equal(t, []string{"Bob Jones"}, ResolveContacts("bob", contacts))
	assert.Empty(t, ResolveContacts("zz", contacts))
	assert.Empty(t, ResolveContacts("", contacts))
}

func TestResolveContactsCaseInsensitive(t *testing.T) {
	got := ResolveContacts("JO", []string{"john smith", "JOANNA LEE"})
	assert.Equal(t, []string{"JOANNA LEE", "john smith"}, got)
}
