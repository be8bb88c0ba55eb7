package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"

	"aimea/internal/config"
	"aimea/internal/dispatch"
	"aimea/internal/intent"
	"aimea/internal/logging"
	"aimea/internal/workflow"
)

// Update is the single event-loop turn: every model mutation happens here.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case bufferMsg:
		return m.handleBuffer(msg)

	case devicesMsg:
		return m.handleDevices(msg)

	case languagesMsg:
		return m.handleLanguages(msg)

	case classifiedMsg:
		return m.handleClassified(msg)

	case triggerFiredMsg:
		return m.handleTriggerFired(msg.trigger)

	case contactsMsg:
		return m.handleContacts(msg)

	case summaryMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			m.status = "summary failed: " + msg.err.Error()
			return m, nil
		}
		m.summary = msg.text
		m.summaryOpen = true
		m.status = "summary updated"
		return m, nil

	case deviceSelectedMsg:
		if msg.err != nil {
			m.status = "device selection failed: " + msg.err.Error()
			return m, nil
		}
		m.activeDevice = msg.name
		m.status = "capturing from " + msg.name
		return m, nil

	case languageSelectedMsg:
		if msg.err != nil {
			m.status = "language selection failed: " + msg.err.Error()
			return m, nil
		}
		m.activeLanguage = msg.value
		m.status = "language set to " + msg.value
		return m, nil

	case scheduledMsg:
		if msg.err != nil {
			logging.ScheduleError("scheduling failed: %v", msg.err)
			m.status = "scheduling failed: " + msg.err.Error()
			return m, nil
		}
		logging.Schedule("meeting scheduled, event id %s", msg.eventID)
		m.status = fmt.Sprintf("meeting scheduled: ID=%s", msg.eventID)
		return m, nil

	case messageSentMsg:
		if msg.err != nil {
			logging.MessageError("send failed: %v", msg.err)
			m.status = "message send failed: " + msg.err.Error()
			return m, nil
		}
		logging.Message("message sent to %s", msg.recipient)
		m.status = "message sent to " + msg.recipient
		return m, nil

	case configReloadMsg:
		m.cfg = config.Config(msg)
		m.status = "configuration reloaded"
		return m, m.waitForConfig()
	}

	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	contentHeight := msg.Height - 6
	if contentHeight < 3 {
		contentHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(msg.Width, contentHeight)
		m.ready = true
		if r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(msg.Width-4),
		); err == nil {
			m.renderer = r
		}
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = contentHeight
	}
	m.viewport.SetContent(m.renderTranscript())
	return m, nil
}

// handleBuffer is one poll tick: re-render the whole transcript, forward
// unseen lines to classification, schedule the next poll. A failed fetch is
// logged and skipped; the next tick retries with no backoff.
func (m Model) handleBuffer(msg bufferMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.fetchBufferAfter(m.cfg.PollEvery())}

	if msg.err != nil {
		logging.PollError("buffer fetch failed: %v", msg.err)
		m.lastErr = msg.err
		return m, tea.Batch(cmds...)
	}
	m.lastErr = nil
	m.lines = msg.lines

	for _, line := range m.dispatcher.NewLines(msg.lines) {
		logging.Classify("classifying: %s", line)
		cmds = append(cmds, m.classifyLine(line))
	}

	if m.ready {
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleDevices(msg devicesMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil || len(msg.devices) == 0 {
		if msg.err != nil {
			logging.PollError("device fetch failed: %v", msg.err)
		}
		return m, m.fetchDevicesAfter(m.cfg.PollEvery())
	}
	m.devices = msg.devices
	m.devicesReady = true
	return m, nil
}

func (m Model) handleLanguages(msg languagesMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil || len(msg.languages) == 0 {
		if msg.err != nil {
			logging.PollError("language fetch failed: %v", msg.err)
		}
		return m, m.fetchLanguagesAfter(m.cfg.PollEvery())
	}
	m.languages = msg.languages
	m.languagesReady = true
	return m, nil
}

// handleClassified annotates the line and, when the evidence gate and ledger
// allow, arms the deferred workflow triggers.
func (m Model) handleClassified(msg classifiedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		logging.ClassifyError("classification failed for %q: %v", msg.line, msg.err)
		m.annotations[msg.line] = "classification error: " + msg.err.Error()
		if m.ready {
			m.viewport.SetContent(m.renderTranscript())
		}
		return m, nil
	}

	result := intent.Suppress(msg.line, msg.result)
	m.annotations[msg.line] = formatAnnotation(result)

	var cmds []tea.Cmd
	for _, t := range m.dispatcher.Evaluate(msg.line, result, m.now()) {
		m.armed[triggerKey(t)] = t.FiredAt
		cmds = append(cmds, m.armTrigger(t))
	}

	if m.ready {
		m.viewport.SetContent(m.renderTranscript())
	}
	return m, tea.Batch(cmds...)
}

// handleTriggerFired starts the workflow for a deferred trigger.
func (m Model) handleTriggerFired(t dispatch.Trigger) (tea.Model, tea.Cmd) {
	delete(m.armed, triggerKey(t))

	switch t.Kind {
	case dispatch.KindSchedule:
		draft := workflow.BuildMeetingDraft(t.Line, m.now(), m.cfg.MeetingFor())
		m.prompts = append(m.prompts, newSchedulePrompt(t, draft))
		return m, nil

	case dispatch.KindMessage:
		recipient, body, ok := workflow.ExtractMessageParts(t.Line)
		if !ok {
			// no parse: fall back to interactive prompting
			m.prompts = append(m.prompts, newRecipientPrompt(t))
			return m, nil
		}
		p := newMessagePrompt(t, workflow.MessageDraft{RecipientQuery: recipient, Body: body})
		m.prompts = append(m.prompts, p)
		return m, m.fetchContacts(p.id)
	}
	return m, nil
}

// handleContacts resolves a messaging prompt's recipient query against the
// fetched contact catalog.
func (m Model) handleContacts(msg contactsMsg) (tea.Model, tea.Cmd) {
	p := m.promptByID(msg.promptID)
	if p == nil {
		return m, nil
	}

	if msg.err != nil {
		logging.MessageError("contact fetch failed: %v", msg.err)
		m.status = "contact fetch failed: " + msg.err.Error()
		m.abandonPrompt(p)
		return m, nil
	}

	matches := workflow.ResolveContacts(p.msg.RecipientQuery, msg.contacts)
	p.resolving = false

	switch len(matches) {
	case 0:
		m.status = fmt.Sprintf("no contact found for %q", p.msg.RecipientQuery)
		m.abandonPrompt(p)
	case 1:
		p.msg.ResolvedRecipient = matches[0]
		p.toCompose()
	default:
		p.kind = promptDisambiguate
		p.candidates = matches
		p.cursor = 0
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// an active prompt owns the keyboard
	if len(m.prompts) > 0 {
		return m.handlePromptKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		if m.watcher != nil {
			_ = m.watcher.Close()
		}
		logging.UI("interactive session ending")
		return m, tea.Quit

	case "s":
		m.status = "fetching summary..."
		return m, m.fetchSummary()

	case "esc":
		m.summaryOpen = false
		return m, nil

	case "tab":
		m.focus = (m.focus + 1) % 3
		return m, nil

	case "up", "k":
		return m.moveCursor(-1), nil

	case "down", "j":
		return m.moveCursor(1), nil

	case "enter":
		switch m.focus {
		case focusDevices:
			if m.devicesReady && len(m.devices) > 0 {
				return m, m.selectDevice(m.devices[m.deviceCursor].Name)
			}
		case focusLanguages:
			if m.languagesReady && len(m.languages) > 0 {
				return m, m.selectLanguage(m.languages[m.languageCursor].Value)
			}
		}
		return m, nil
	}

	if m.focus == focusTranscript && m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) moveCursor(delta int) Model {
	switch m.focus {
	case focusDevices:
		m.deviceCursor = clamp(m.deviceCursor+delta, len(m.devices))
	case focusLanguages:
		m.languageCursor = clamp(m.languageCursor+delta, len(m.languages))
	}
	return m
}

// handlePromptKey routes keys to the prompt at the head of the queue.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.prompts[0]

	switch p.kind {
	case promptScheduleConfirm:
		switch msg.String() {
		case "enter", "y":
			m.removePrompt(p.id)
			m.status = "scheduling meeting..."
			return m, m.submitSchedule(p.trigger.Line, p.draft)
		case "esc", "n":
			logging.Schedule("draft cancelled for line: %s", p.trigger.Line)
			m.abandonPrompt(p)
			m.status = "scheduling cancelled"
		}
		return m, nil

	case promptRecipientInput:
		switch msg.String() {
		case "enter":
			value := strings.TrimSpace(p.input.Value())
			if value == "" {
				m.abandonPrompt(p)
				m.status = "message abandoned: no recipient"
				return m, nil
			}
			p.msg.RecipientQuery = value
			if p.msg.Body == "" {
				p.toBodyInput()
				return m, nil
			}
			p.resolving = true
			return m, m.fetchContacts(p.id)
		case "esc":
			m.abandonPrompt(p)
			m.status = "message cancelled"
			return m, nil
		}
		return m, m.updatePromptInput(p, msg)

	case promptBodyInput:
		switch msg.String() {
		case "enter":
			value := strings.TrimSpace(p.input.Value())
			if value == "" {
				m.abandonPrompt(p)
				m.status = "message abandoned: no body"
				return m, nil
			}
			p.msg.Body = value
			p.resolving = true
			return m, m.fetchContacts(p.id)
		case "esc":
			m.abandonPrompt(p)
			m.status = "message cancelled"
			return m, nil
		}
		return m, m.updatePromptInput(p, msg)

	case promptDisambiguate:
		if p.resolving {
			if msg.String() == "esc" {
				m.abandonPrompt(p)
				m.status = "message cancelled"
			}
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			p.cursor = clamp(p.cursor-1, len(p.candidates))
		case "down", "j":
			p.cursor = clamp(p.cursor+1, len(p.candidates))
		case "enter":
			p.msg.ResolvedRecipient = p.candidates[p.cursor]
			logging.Message("recipient resolved to %s", p.msg.ResolvedRecipient)
			p.toCompose()
		case "esc":
			m.abandonPrompt(p)
			m.status = "message cancelled"
		}
		return m, nil

	case promptCompose:
		switch msg.String() {
		case "enter":
			body := strings.TrimSpace(p.input.Value())
			if body == "" {
				return m, nil
			}
			m.removePrompt(p.id)
			m.status = "sending message..."
			return m, m.submitMessage(p.msg.ResolvedRecipient, body)
		case "esc":
			m.abandonPrompt(p)
			m.status = "message cancelled"
			return m, nil
		}
		return m, m.updatePromptInput(p, msg)
	}
	return m, nil
}

func (m Model) updatePromptInput(p *prompt, msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// abandonPrompt drops a prompt and re-admits its line so the same utterance
// can prompt again if it is ever seen again.
func (m *Model) abandonPrompt(p *prompt) {
	m.dispatcher.Release(p.trigger)
	m.removePrompt(p.id)
}

func (m *Model) removePrompt(id uuid.UUID) {
	for i, p := range m.prompts {
		if p.id == id {
			m.prompts = append(m.prompts[:i], m.prompts[i+1:]...)
			return
		}
	}
}

func (m Model) promptByID(id uuid.UUID) *prompt {
	for _, p := range m.prompts {
		if p.id == id {
			return p
		}
	}
	return nil
}

// formatAnnotation renders a classification under its line, mirroring the
// transcript view's annotation contract: nothing without an intent or error.
func formatAnnotation(c intent.Classification) string {
	if c.Error != "" {
		return "classification error: " + c.Error
	}
	if c.Intent == intent.None {
		return ""
	}
	var b strings.Builder
	if c.Language != "" {
		fmt.Fprintf(&b, "Lang: %s, ", c.Language)
	}
	fmt.Fprintf(&b, "Intent: %s", c.Intent)
	if len(c.Topics) > 0 {
		fmt.Fprintf(&b, ", Topics: %s", strings.Join(c.Topics, ", "))
	}
	return b.String()
}

func clamp(v, n int) int {
	if n == 0 {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
