// Package dispatch routes freshly polled transcript lines through
// classification gating and decides, against the dedup ledger, which action
// triggers may be armed. It owns no timers itself; the event loop arms the
// deferred invocations it reports.
package dispatch

import (
	"time"

	"aimea/internal/intent"
	"aimea/internal/ledger"
	"aimea/internal/logging"
)

// Kind discriminates the two action trigger flavors.
type Kind string

const (
	KindSchedule Kind = "schedule"
	KindMessage  Kind = "message"
)

// Trigger records that a line passed the evidence gate for one action kind.
// At most one trigger per (line, kind) pair is ever produced; the ledger
// enforces it.
type Trigger struct {
	Line    string
	Kind    Kind
	FiredAt time.Time
}

// Dispatcher filters buffer lines to unseen ones and evaluates classified
// lines for action triggers. It must only be used from a single event-loop
// goroutine; the ledger's check-then-mark steps rely on that.
type Dispatcher struct {
	ledger *ledger.Ledger
}

// New returns a dispatcher over the given ledger.
func New(l *ledger.Ledger) *Dispatcher {
	return &Dispatcher{ledger: l}
}

// NewLines returns the buffer lines not yet classified, in buffer order,
// marking each as seen. Re-polling an unchanged buffer yields nothing.
func (d *Dispatcher) NewLines(buffer []string) []string {
	var fresh []string
	for _, line := range buffer {
		if line == "" {
			continue
		}
		if d.ledger.ShouldClassify(line) {
			fresh = append(fresh, line)
		}
	}
	if len(fresh) > 0 {
		logging.Poll("%d new line(s) of %d in buffer", len(fresh), len(buffer))
	}
	return fresh
}

// Evaluate applies the evidence gate to a classified line and returns the
// triggers that may be armed. The ledger guarantees each (line, kind) pair
// fires at most once even if the same line is evaluated again.
func (d *Dispatcher) Evaluate(line string, c intent.Classification, now time.Time) []Trigger {
	var triggers []Trigger

	if intent.AdmitsSchedule(line, c) && d.ledger.ShouldTriggerSchedule(line) {
		logging.Schedule("trigger armed for line: %s", line)
		triggers = append(triggers, Trigger{Line: line, Kind: KindSchedule, FiredAt: now})
	}
	if intent.AdmitsMessage(line, c) && d.ledger.ShouldTriggerMessage(line) {
		logging.Message("trigger armed for line: %s", line)
		triggers = append(triggers, Trigger{Line: line, Kind: KindMessage, FiredAt: now})
	}
	return triggers
}

// Release re-admits a trigger's line for a future attempt of the same kind.
// Called on user cancellation and on unresolvable recipients.
func (d *Dispatcher) Release(t Trigger) {
	switch t.Kind {
	case KindSchedule:
		d.ledger.ReleaseSchedule(t.Line)
	case KindMessage:
		d.ledger.ReleaseMessage(t.Line)
	}
}
