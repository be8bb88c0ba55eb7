package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aimea/internal/intent"
	"aimea/internal/ledger"
)

var now = time.Date(2025, 6, 11, 10, 30, 0, 0, time.Local)

func TestNewLinesFiltersSeen(t *testing.T) {
	d := New(ledger.New())

	buffer := []string{"line one", "line two"}
	assert.Equal(t, buffer, d.NewLines(buffer))

	// re-polling the same unchanged buffer yields nothing
	assert.Empty(t, d.NewLines(buffer))

	// an appended line comes through alone
	assert.Equal(t, []string{"line three"}, d.NewLines(append(buffer, "line three")))
}

func TestNewLinesSkipsEmptyLines(t *testing.T) {
	d := New(ledger.New())
	assert.Equal(t, []string{"hello"}, d.NewLines([]string{"", "hello", ""}))
}

func TestEvaluateArmsScheduleOnce(t *testing.T) {
	d := New(ledger.New())
	line := "let's schedule a meeting tomorrow at 2 pm"
	c := intent.Classification{Intent: intent.ScheduleMeeting}

	triggers := d.Evaluate(line, c, now)
	require.Len(t, triggers, 1)
	assert.Equal(t, KindSchedule, triggers[0].Kind)
	assert.Equal(t, line, triggers[0].Line)
	assert.Equal(t, now, triggers[0].FiredAt)

	// a second evaluation of the same line never double-arms
	assert.Empty(t, d.Evaluate(line, c, now))
}

func TestEvaluateRespectsEvidenceGate(t *testing.T) {
	d := New(ledger.New())

	// classifier label without temporal evidence never arms
	assert.Empty(t, d.Evaluate("schedule a meeting soon",
		intent.Classification{Intent: intent.ScheduleMeeting}, now))

	// message label without lexical token never arms
	assert.Empty(t, d.Evaluate("tell him I said hi",
		intent.Classification{Intent: intent.SendMessage}, now))
}

func TestReleaseReadmitsLine(t *testing.T) {
	d := New(ledger.New())
	line := "send a message to jo see you soon"
	c := intent.Classification{Intent: intent.SendMessage}

	triggers := d.Evaluate(line, c, now)
	require.Len(t, triggers, 1)
	assert.Equal(t, KindMessage, triggers[0].Kind)

	d.Release(triggers[0])
	assert.Len(t, d.Evaluate(line, c, now), 1)
}
