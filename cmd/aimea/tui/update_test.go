package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"aimea/internal/backend"
	"aimea/internal/config"
	"aimea/internal/dispatch"
	"aimea/internal/intent"
	"aimea/internal/workflow"
)

// stubService records boundary calls and serves canned responses.
type stubService struct {
	buffer   []string
	contacts []string

	classifyCalls  []string
	scheduledDraft *workflow.MeetingDraft
	sentRecipient  string
	sentBody       string

	contactsErr error
}

func (s *stubService) ListDevices(context.Context) ([]backend.Device, error) {
	return []backend.Device{{Name: "Built-in Mic"}}, nil
}

func (s *stubService) SelectDevice(_ context.Context, name string) error { return nil }

func (s *stubService) ListLanguages(context.Context) ([]backend.Language, error) {
	return []backend.Language{{Value: "en", Label: "English"}}, nil
}

func (s *stubService) SelectLanguage(_ context.Context, value string) (string, error) {
	return value, nil
}

func (s *stubService) FetchBuffer(context.Context) ([]string, error) {
	return s.buffer, nil
}

func (s *stubService) Classify(_ context.Context, text string) (intent.Classification, error) {
	s.classifyCalls = append(s.classifyCalls, text)
	return intent.Classification{Intent: intent.Other}, nil
}

func (s *stubService) FetchSummary(context.Context) (string, error) {
	return "# Summary\n\nnothing yet", nil
}

func (s *stubService) ListContacts(context.Context) ([]string, error) {
	if s.contactsErr != nil {
		return nil, s.contactsErr
	}
	return s.contacts, nil
}

func (s *stubService) ScheduleMeeting(_ context.Context, draft workflow.MeetingDraft) (string, error) {
	s.scheduledDraft = &draft
	return "evt-42", nil
}

func (s *stubService) SendMessage(_ context.Context, recipient, body string) error {
	s.sentRecipient = recipient
	s.sentBody = body
	return nil
}

// testNow is a Wednesday mid-morning, matching the temporal package tests.
var testNow = time.Date(2025, 6, 11, 10, 30, 0, 0, time.Local)

func newTestModel(svc Service) Model {
	cfg := config.Default()
	cfg.PollInterval = "1ms"
	cfg.TriggerDelay = "1ms"
	m := New(svc, cfg, nil)
	m.now = func() time.Time { return testNow }
	m.ready = true
	return m
}

// drain executes a command tree and collects the produced messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func TestBufferPollClassifiesOnlyUnseenLines(t *testing.T) {
	svc := &stubService{}
	m := newTestModel(svc)

	m, cmd := step(t, m, bufferMsg{lines: []string{"hello there", "how are you"}})
	drain(cmd)
	assert.Equal(t, []string{"hello there", "how are you"}, svc.classifyCalls)

	// The same buffer re-polled must not classify again.
	m, cmd = step(t, m, bufferMsg{lines: []string{"hello there", "how are you"}})
	drain(cmd)
	assert.Len(t, svc.classifyCalls, 2)

	// A new line mixed into old ones classifies only once.
	_, cmd = step(t, m, bufferMsg{lines: []string{"hello there", "how are you", "brand new"}})
	drain(cmd)
	assert.Equal(t, []string{"hello there", "how are you", "brand new"}, svc.classifyCalls)
}

func TestBufferErrorKeepsPolling(t *testing.T) {
	m := newTestModel(&stubService{})

	m, cmd := step(t, m, bufferMsg{err: errors.New("backend down")})
	if cmd == nil {
		t.Fatal("expected a reschedule command after a failed poll")
	}
	assert.Error(t, m.lastErr)

	// A following good poll clears the error.
	m, _ = step(t, m, bufferMsg{lines: []string{"ok again"}})
	assert.NoError(t, m.lastErr)
}

func TestScheduleIntentArmsTriggerOnce(t *testing.T) {
	m := newTestModel(&stubService{})
	line := "let's schedule a meeting tomorrow at 2 pm"
	c := intent.Classification{Intent: intent.ScheduleMeeting, Language: "en"}

	m, _ = step(t, m, classifiedMsg{line: line, result: c})
	assert.Len(t, m.armed, 1)

	// Re-classifying the same line must not arm a second timer.
	m, cmd := step(t, m, classifiedMsg{line: line, result: c})
	assert.Len(t, m.armed, 1)
	assert.Empty(t, drain(cmd))
}

func TestSuppressedMessageIntentNeverArms(t *testing.T) {
	m := newTestModel(&stubService{})
	line := "the weather is lovely today"

	m, _ = step(t, m, classifiedMsg{line: line, result: intent.Classification{Intent: intent.SendMessage}})
	assert.Empty(t, m.armed)
	assert.Empty(t, m.annotations[line])
}

func TestScheduleConfirmFlow(t *testing.T) {
	svc := &stubService{}
	m := newTestModel(svc)
	line := "let's schedule a meeting tomorrow at 2 pm"

	m, _ = step(t, m, classifiedMsg{line: line, result: intent.Classification{Intent: intent.ScheduleMeeting}})
	m, _ = step(t, m, triggerFiredMsg{trigger: dispatch.Trigger{Line: line, Kind: dispatch.KindSchedule, FiredAt: testNow}})

	if len(m.prompts) != 1 {
		t.Fatalf("got %d prompts, want 1", len(m.prompts))
	}
	p := m.prompts[0]
	assert.Equal(t, promptScheduleConfirm, p.kind)

	wantStart := time.Date(2025, 6, 12, 14, 0, 0, 0, time.Local)
	assert.Equal(t, wantStart, p.draft.Start)
	assert.Equal(t, wantStart.Add(30*time.Minute), p.draft.End)

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.prompts)

	msgs := drain(cmd)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages from confirm, want 1", len(msgs))
	}
	scheduled, ok := msgs[0].(scheduledMsg)
	if !ok {
		t.Fatalf("got %T, want scheduledMsg", msgs[0])
	}
	assert.NoError(t, scheduled.err)
	assert.Equal(t, "evt-42", scheduled.eventID)
	if svc.scheduledDraft == nil {
		t.Fatal("ScheduleMeeting was never called")
	}
	assert.Equal(t, wantStart, svc.scheduledDraft.Start)

	m, _ = step(t, m, scheduled)
	assert.Contains(t, m.status, "evt-42")
}

func TestScheduleDeclineReleasesLine(t *testing.T) {
	m := newTestModel(&stubService{})
	line := "schedule a meeting next monday"
	c := intent.Classification{Intent: intent.ScheduleMeeting}

	m, _ = step(t, m, classifiedMsg{line: line, result: c})
	m, _ = step(t, m, triggerFiredMsg{trigger: dispatch.Trigger{Line: line, Kind: dispatch.KindSchedule, FiredAt: testNow}})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.prompts)

	// Declining re-admits the line for a future decision.
	m, _ = step(t, m, classifiedMsg{line: line, result: c})
	assert.Len(t, m.armed, 1)
}

func TestMessageDisambiguationFlow(t *testing.T) {
	svc := &stubService{contacts: []string{"John Smith", "Joanna Lee", "Bob Jones"}}
	m := newTestModel(svc)
	line := "send a message to jo, running late"

	m, _ = step(t, m, classifiedMsg{line: line, result: intent.Classification{Intent: intent.SendMessage}})
	m, cmd := step(t, m, triggerFiredMsg{trigger: dispatch.Trigger{Line: line, Kind: dispatch.KindMessage, FiredAt: testNow}})

	if len(m.prompts) != 1 {
		t.Fatalf("got %d prompts, want 1", len(m.prompts))
	}
	assert.True(t, m.prompts[0].resolving)
	assert.Equal(t, "jo", m.prompts[0].msg.RecipientQuery)
	assert.Equal(t, "running late", m.prompts[0].msg.Body)

	msgs := drain(cmd)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages from trigger, want 1", len(msgs))
	}
	m, _ = step(t, m, msgs[0])

	p := m.prompts[0]
	assert.Equal(t, promptDisambiguate, p.kind)
	assert.Equal(t, []string{"Joanna Lee", "John Smith", "Bob Jones"}, p.candidates)

	// Pick the second candidate and send.
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, promptCompose, m.prompts[0].kind)
	assert.Equal(t, "John Smith", m.prompts[0].msg.ResolvedRecipient)

	m, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.prompts)
	msgs = drain(cmd)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages from send, want 1", len(msgs))
	}
	sent, ok := msgs[0].(messageSentMsg)
	if !ok {
		t.Fatalf("got %T, want messageSentMsg", msgs[0])
	}
	assert.NoError(t, sent.err)
	assert.Equal(t, "John Smith", svc.sentRecipient)
	assert.Equal(t, "running late", svc.sentBody)
}

func TestMessageSingleMatchAutoResolves(t *testing.T) {
	svc := &stubService{contacts: []string{"John Smith", "Joanna Lee", "Bob Jones"}}
	m := newTestModel(svc)
	line := "send a message to joanna, see you at five"

	m, _ = step(t, m, classifiedMsg{line: line, result: intent.Classification{Intent: intent.SendMessage}})
	m, cmd := step(t, m, triggerFiredMsg{trigger: dispatch.Trigger{Line: line, Kind: dispatch.KindMessage, FiredAt: testNow}})
	msgs := drain(cmd)
	m, _ = step(t, m, msgs[0])

	p := m.prompts[0]
	assert.Equal(t, promptCompose, p.kind)
	assert.Equal(t, "Joanna Lee", p.msg.ResolvedRecipient)
	assert.Equal(t, "see you at five", p.input.Value())
}

func TestMessageNoMatchAbandonsAndReleases(t *testing.T) {
	svc := &stubService{contacts: []string{"John Smith"}}
	m := newTestModel(svc)
	line := "send a message to zelda, hello"
	c := intent.Classification{Intent: intent.SendMessage}

	m, _ = step(t, m, classifiedMsg{line: line, result: c})
	m, cmd := step(t, m, triggerFiredMsg{trigger: dispatch.Trigger{Line: line, Kind: dispatch.KindMessage, FiredAt: testNow}})
	msgs := drain(cmd)
	m, _ = step(t, m, msgs[0])

	assert.Empty(t, m.prompts)
	assert.Contains(t, m.status, "no contact found")

	// The abandoned line can trigger again.
	m, _ = step(t, m, classifiedMsg{line: line, result: c})
	assert.Len(t, m.armed, 1)
}

func TestMessageWithoutParseablePartsPromptsForRecipient(t *testing.T) {
	m := newTestModel(&stubService{})
	line := "can you text him about it"

	m, _ = step(t, m, classifiedMsg{line: line, result: intent.Classification{Intent: intent.SendMessage}})
	m, _ = step(t, m, triggerFiredMsg{trigger: dispatch.Trigger{Line: line, Kind: dispatch.KindMessage, FiredAt: testNow}})

	if len(m.prompts) != 1 {
		t.Fatalf("got %d prompts, want 1", len(m.prompts))
	}
	assert.Equal(t, promptRecipientInput, m.prompts[0].kind)
}

func TestContactFetchErrorAbandonsPrompt(t *testing.T) {
	svc := &stubService{contactsErr: errors.New("catalog offline")}
	m := newTestModel(svc)
	line := "send a message to bob, on my way"

	m, _ = step(t, m, classifiedMsg{line: line, result: intent.Classification{Intent: intent.SendMessage}})
	m, cmd := step(t, m, triggerFiredMsg{trigger: dispatch.Trigger{Line: line, Kind: dispatch.KindMessage, FiredAt: testNow}})
	msgs := drain(cmd)
	m, _ = step(t, m, msgs[0])

	assert.Empty(t, m.prompts)
	assert.Contains(t, m.status, "contact fetch failed")
}

func TestPromptQueueHoldsConcurrentInstances(t *testing.T) {
	m := newTestModel(&stubService{})
	first := "schedule a meeting next friday at 9 am"
	second := "schedule a meeting next monday at 3 pm"

	for _, line := range []string{first, second} {
		m, _ = step(t, m, triggerFiredMsg{trigger: dispatch.Trigger{Line: line, Kind: dispatch.KindSchedule, FiredAt: testNow}})
	}
	if len(m.prompts) != 2 {
		t.Fatalf("got %d prompts, want 2", len(m.prompts))
	}
	assert.Equal(t, first, m.prompts[0].trigger.Line)

	// Resolving the head surfaces the next instance.
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if len(m.prompts) != 1 {
		t.Fatalf("got %d prompts, want 1", len(m.prompts))
	}
	assert.Equal(t, second, m.prompts[0].trigger.Line)
}

func TestCatalogPollingStopsWhenPopulated(t *testing.T) {
	m := newTestModel(&stubService{})

	// Empty catalogs keep polling.
	m, cmd := step(t, m, devicesMsg{})
	if cmd == nil {
		t.Fatal("expected a device re-poll for an empty catalog")
	}
	assert.False(t, m.devicesReady)

	m, cmd = step(t, m, devicesMsg{devices: []backend.Device{{Name: "Built-in Mic"}}})
	assert.Nil(t, cmd)
	assert.True(t, m.devicesReady)

	m, cmd = step(t, m, languagesMsg{languages: []backend.Language{{Value: "en", Label: "English"}}})
	assert.Nil(t, cmd)
	assert.True(t, m.languagesReady)
}

func TestAnnotationRendering(t *testing.T) {
	tests := []struct {
		name string
		c    intent.Classification
		want string
	}{
		{
			name: "full",
			c:    intent.Classification{Intent: intent.ScheduleMeeting, Language: "en", Topics: []string{"meeting", "planning"}},
			want: "Lang: en, Intent: schedule_meeting, Topics: meeting, planning",
		},
		{
			name: "no topics",
			c:    intent.Classification{Intent: intent.Other, Language: "de"},
			want: "Lang: de, Intent: other",
		},
		{
			name: "service error",
			c:    intent.Classification{Error: "model overloaded"},
			want: "classification error: model overloaded",
		},
		{
			name: "none is silent",
			c:    intent.Classification{Intent: intent.None, Language: "en"},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatAnnotation(tt.c))
		})
	}
}
