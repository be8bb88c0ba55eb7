package intent

import "regexp"

// The gate re-checks soft classifier labels against the raw line before any
// action fires. Classifier output is noisy; a line that merely mentions
// "meeting" in passing must not pop a scheduling prompt.
var (
	scheduleLexRe = regexp.MustCompile(`(?i)\bschedule\b.*\bmeeting\b`)
	messageLexRe  = regexp.MustCompile(`(?i)\b(send|message|text)\b`)

	// Temporal evidence mirrors the phrase parser's token grammar but is kept
	// as an independent predicate: the gate only needs presence, not a value.
	timeEvidenceRe = regexp.MustCompile(`(?i)\b(?:at\s+)?(\d{1,2}|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve)(?::\d{2})?\s*(am|pm)\b`)
	dayEvidenceRe  = regexp.MustCompile(`(?i)\btomorrow\b|\b(next\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
)

// AdmitsSchedule reports whether a classified line may trigger the scheduling
// workflow: the classifier label, a literal "schedule ... meeting" pattern,
// and explicit temporal evidence must all be present.
func AdmitsSchedule(line string, c Classification) bool {
	return c.Intent == ScheduleMeeting &&
		scheduleLexRe.MatchString(line) &&
		(timeEvidenceRe.MatchString(line) || dayEvidenceRe.MatchString(line))
}

// AdmitsMessage reports whether a classified line may trigger the messaging
// workflow: the classifier label plus at least one of the literal tokens
// send/message/text.
func AdmitsMessage(line string, c Classification) bool {
	return c.Intent == SendMessage && messageLexRe.MatchString(line)
}

// Suppress applies the unconditional pre-render check: a send_message label
// on a line without any messaging token is forced back to no intent. The
// schedule label is deliberately left untouched here; its lexical+temporal
// check runs at trigger time instead.
func Suppress(line string, c Classification) Classification {
	if c.Intent == SendMessage && !messageLexRe.MatchString(line) {
		c.Intent = None
	}
	return c
}
