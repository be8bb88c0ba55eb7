package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const line = "let's schedule a meeting tomorrow at 2 pm"

func TestShouldClassifyMarksOnFirstSight(t *testing.T) {
	l := New()
	assert.True(t, l.ShouldClassify(line))
	assert.False(t, l.ShouldClassify(line))
	assert.True(t, l.ShouldClassify("a different line"))
}

func TestTriggerSetsAreIndependent(t *testing.T) {
	l := New()
	assert.True(t, l.ShouldTriggerSchedule(line))
	assert.False(t, l.ShouldTriggerSchedule(line))

	// message trigger state is tracked separately for the same line
	assert.True(t, l.ShouldTriggerMessage(line))
	assert.False(t, l.ShouldTriggerMessage(line))

	// classification state is untouched by trigger marks
	assert.True(t, l.ShouldClassify(line))
}

func TestReleaseReadmitsForFutureTrigger(t *testing.T) {
	l := New()
	assert.True(t, l.ShouldTriggerSchedule(line))
	l.ReleaseSchedule(line)
	assert.True(t, l.ShouldTriggerSchedule(line))

	assert.True(t, l.ShouldTriggerMessage(line))
	l.ReleaseMessage(line)
	assert.True(t, l.ShouldTriggerMessage(line))
}

func TestReleaseUnknownLineIsIdempotent(t *testing.T) {
	l := New()
	l.ReleaseSchedule("never seen")
	l.ReleaseMessage("never seen")
	assert.True(t, l.ShouldTriggerSchedule("never seen"))
}
