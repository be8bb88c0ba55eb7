package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/google/uuid"

	"aimea/internal/dispatch"
	"aimea/internal/workflow"
)

// promptKind is the interaction step a workflow instance is blocked on.
// The scheduling workflow only ever needs promptScheduleConfirm; the
// messaging workflow walks recipient/body prompts, disambiguation, and
// composition as its state machine dictates.
type promptKind int

const (
	promptScheduleConfirm promptKind = iota
	promptRecipientInput
	promptBodyInput
	promptDisambiguate
	promptCompose
)

// prompt is one in-flight workflow instance awaiting a user decision.
// Instances queue FIFO; only the head is rendered, but each owns its own
// draft so several can be pending at once without shared state.
type prompt struct {
	id      uuid.UUID
	kind    promptKind
	trigger dispatch.Trigger

	// schedule workflow
	draft workflow.MeetingDraft

	// messaging workflow
	msg        workflow.MessageDraft
	candidates []string
	cursor     int
	resolving  bool // contact fetch in flight

	input textinput.Model
}

func newSchedulePrompt(t dispatch.Trigger, draft workflow.MeetingDraft) *prompt {
	return &prompt{
		id:      uuid.New(),
		kind:    promptScheduleConfirm,
		trigger: t,
		draft:   draft,
	}
}

func newMessagePrompt(t dispatch.Trigger, draft workflow.MessageDraft) *prompt {
	return &prompt{
		id:        uuid.New(),
		kind:      promptDisambiguate,
		trigger:   t,
		msg:       draft,
		resolving: true,
	}
}

func newRecipientPrompt(t dispatch.Trigger) *prompt {
	in := textinput.New()
	in.Placeholder = "recipient"
	in.Focus()
	return &prompt{
		id:      uuid.New(),
		kind:    promptRecipientInput,
		trigger: t,
		input:   in,
	}
}

// toBodyInput switches a prompt to the free-text body step.
func (p *prompt) toBodyInput() {
	in := textinput.New()
	in.Placeholder = "message body"
	in.Focus()
	p.kind = promptBodyInput
	p.input = in
}

// toCompose switches a prompt to the editable composition step, seeded with
// the extracted or prompted body.
func (p *prompt) toCompose() {
	in := textinput.New()
	in.SetValue(p.msg.Body)
	in.CursorEnd()
	in.Focus()
	p.kind = promptCompose
	p.input = in
}
