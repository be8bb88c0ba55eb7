// Package workflow builds the structured action payloads behind the two
// human-confirmed side effects: calendar event drafts and outgoing message
// drafts. Extraction and contact resolution are pure; the interactive state
// machines around them live in the UI layer.
package workflow

import (
	"regexp"
	"strings"
	"time"

	"aimea/internal/temporal"
)

// FallbackTitle is used when no detail phrase follows the trigger pattern.
const FallbackTitle = "Meeting"

// MeetingDraft is a candidate calendar event awaiting explicit confirmation.
// It is never partially submitted: the draft is sent whole on acceptance or
// discarded whole on cancellation.
type MeetingDraft struct {
	Title       string
	Start       time.Time
	End         time.Time
	Description string
	Attendees   []string
}

var (
	schedulePhraseRe = regexp.MustCompile(`(?i)\bschedule\b.*?\bmeeting\b(?:\s+(?:for|on)\b)?\s*(.*)$`)
	trailingPunctRe  = regexp.MustCompile(`[.!?,;:]+$`)
)

// ExtractSchedulePhrase returns the detail phrase following the
// "schedule ... meeting [for|on]" pattern, with trailing sentence punctuation
// stripped. Empty when the line does not match or carries no trailing phrase.
func ExtractSchedulePhrase(line string) string {
	m := schedulePhraseRe.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(trailingPunctRe.ReplaceAllString(m[1], ""))
}

// BuildMeetingDraft turns a trigger line into a confirmable event draft.
// The detail phrase is parsed for a concrete datetime; when parsing yields
// nothing the draft starts now. End time is start plus length.
func BuildMeetingDraft(line string, now time.Time, length time.Duration) MeetingDraft {
	phrase := ExtractSchedulePhrase(line)

	start, ok := temporal.Parse(phrase, now)
	if !ok {
		start = now
	}

	title := FallbackTitle
	if phrase != "" {
		title = "Meeting: " + phrase
	}

	return MeetingDraft{
		Title:       title,
		Start:       start,
		End:         start.Add(length),
		Description: line,
	}
}
