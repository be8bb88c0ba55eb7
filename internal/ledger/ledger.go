// Package ledger tracks which transcript lines have already been classified
// or have already triggered an action. Line identity is exact text equality:
// two utterances with identical text are the same event.
//
// The ledger is owned and mutated exclusively by the event loop, so the
// check-then-mark operations are atomic within a single loop turn and need no
// locking.
package ledger

// Ledger holds the three per-session line sets. State lives for the duration
// of one polling session; nothing is persisted.
type Ledger struct {
	classified        map[string]struct{}
	scheduleTriggered map[string]struct{}
	messageTriggered  map[string]struct{}
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{
		classified:        make(map[string]struct{}),
		scheduleTriggered: make(map[string]struct{}),
		messageTriggered:  make(map[string]struct{}),
	}
}

// ShouldClassify reports whether the line has not been classified yet and
// marks it as seen in the same step.
func (l *Ledger) ShouldClassify(line string) bool {
	return l.checkAndMark(l.classified, line)
}

// ShouldTriggerSchedule reports whether the line has not armed a scheduling
// trigger yet and marks it in the same step.
func (l *Ledger) ShouldTriggerSchedule(line string) bool {
	return l.checkAndMark(l.scheduleTriggered, line)
}

// ShouldTriggerMessage reports whether the line has not armed a messaging
// trigger yet and marks it in the same step.
func (l *Ledger) ShouldTriggerMessage(line string) bool {
	return l.checkAndMark(l.messageTriggered, line)
}

// ReleaseSchedule re-admits a line for a future scheduling trigger. Used on
// user cancellation so the same spoken line can re-prompt if seen again; a
// live buffer rarely replays a line, so this is best-effort by design.
func (l *Ledger) ReleaseSchedule(line string) {
	delete(l.scheduleTriggered, line)
}

// ReleaseMessage re-admits a line for a future messaging trigger.
func (l *Ledger) ReleaseMessage(line string) {
	delete(l.messageTriggered, line)
}

func (l *Ledger) checkAndMark(set map[string]struct{}, line string) bool {
	if _, seen := set[line]; seen {
		return false
	}
	set[line] = struct{}{}
	return true
}
