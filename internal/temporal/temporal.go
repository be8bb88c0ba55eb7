// Package temporal turns free-form spoken phrases into concrete datetimes.
// It recognizes a time-of-day token ("at 3 pm", "eleven:30 am") and an
// optional weekday token ("monday", "next friday") and composes them against
// a caller-supplied reference instant. Pure and deterministic; no I/O.
package temporal

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// Hour is a 1-2 digit number or an English number word. Restricting the
	// word alternation to one..twelve means an unrecognized word is simply
	// not a time token, rather than silently parsing as midnight.
	timeOfDayRe = regexp.MustCompile(`(?i)\b(?:at\s+)?(\d{1,2}|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve)(?::(\d{2}))?\s*(am|pm)\b`)

	weekdayRe  = regexp.MustCompile(`(?i)\b(next\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	tomorrowRe = regexp.MustCompile(`(?i)\btomorrow\b`)
)

var hourWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Parse extracts a concrete datetime from text relative to now.
// Composition rules:
//   - day + time: the resolved weekday's date at the resolved time
//   - time only: now's date at the resolved time
//   - day only: the resolved weekday's date with the clock time taken from
//     now (deliberately not midnight)
//   - neither: ok is false
func Parse(text string, now time.Time) (t time.Time, ok bool) {
	hour, minute, hasTime := parseTimeOfDay(text)
	dayOffset, hasDay := parseWeekday(text, now)

	switch {
	case hasDay && hasTime:
		d := now.AddDate(0, 0, dayOffset)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, now.Location()), true
	case hasTime:
		return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()), true
	case hasDay:
		return now.AddDate(0, 0, dayOffset), true
	default:
		return time.Time{}, false
	}
}

// HasTimeOfDay reports whether text contains a recognizable time-of-day token.
func HasTimeOfDay(text string) bool {
	return timeOfDayRe.MatchString(text)
}

// parseTimeOfDay resolves the first time-of-day token to 24-hour clock values.
func parseTimeOfDay(text string) (hour, minute int, ok bool) {
	m := timeOfDayRe.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}

	raw := strings.ToLower(m[1])
	if h, err := strconv.Atoi(raw); err == nil {
		hour = h
	} else {
		hour = hourWords[raw]
	}
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}

	switch strings.ToLower(m[3]) {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	return hour, minute, true
}

// parseWeekday resolves the first day token to a forward day offset from now.
// A plain weekday name can resolve to today (offset 0); with "next" a
// same-day hit advances a full week. "tomorrow" is a fixed one-day offset.
func parseWeekday(text string, now time.Time) (offset int, ok bool) {
	m := weekdayRe.FindStringSubmatch(text)
	if m == nil {
		if tomorrowRe.MatchString(text) {
			return 1, true
		}
		return 0, false
	}

	target := weekdays[strings.ToLower(m[2])]
	offset = (int(target) - int(now.Weekday()) + 7) % 7
	if m[1] != "" && offset == 0 {
		offset = 7
	}
	return offset, true
}
