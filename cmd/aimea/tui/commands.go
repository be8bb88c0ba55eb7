package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"aimea/internal/dispatch"
	"aimea/internal/logging"
	"aimea/internal/workflow"
)

// callCtx bounds one boundary call. A hung call stalls only the workflow
// instance that issued it, never the loop.
func (m Model) callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.cfg.RequestTimeoutFor())
}

// fetchBuffer polls the live buffer once, immediately.
func (m Model) fetchBuffer() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		lines, err := m.svc.FetchBuffer(ctx)
		return bufferMsg{lines: lines, err: err}
	}
}

// fetchBufferAfter schedules the next buffer poll.
func (m Model) fetchBufferAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		lines, err := m.svc.FetchBuffer(ctx)
		return bufferMsg{lines: lines, err: err}
	})
}

func (m Model) fetchDevices() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		devices, err := m.svc.ListDevices(ctx)
		return devicesMsg{devices: devices, err: err}
	}
}

func (m Model) fetchDevicesAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		devices, err := m.svc.ListDevices(ctx)
		return devicesMsg{devices: devices, err: err}
	})
}

func (m Model) fetchLanguages() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		languages, err := m.svc.ListLanguages(ctx)
		return languagesMsg{languages: languages, err: err}
	}
}

func (m Model) fetchLanguagesAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		languages, err := m.svc.ListLanguages(ctx)
		return languagesMsg{languages: languages, err: err}
	})
}

// classifyLine sends one new line to the classification service.
func (m Model) classifyLine(line string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		result, err := m.svc.Classify(ctx, line)
		return classifiedMsg{line: line, result: result, err: err}
	}
}

// armTrigger defers the workflow invocation so more context can accumulate
// in the buffer before the workflow re-reads the line.
func (m Model) armTrigger(t dispatch.Trigger) tea.Cmd {
	return tea.Tick(m.cfg.TriggerAfter(), func(time.Time) tea.Msg {
		return triggerFiredMsg{trigger: t}
	})
}

// fetchContacts loads the contact catalog for one messaging prompt.
func (m Model) fetchContacts(promptID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		contacts, err := m.svc.ListContacts(ctx)
		return contactsMsg{promptID: promptID, contacts: contacts, err: err}
	}
}

func (m Model) fetchSummary() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		text, err := m.svc.FetchSummary(ctx)
		return summaryMsg{text: text, err: err}
	}
}

func (m Model) selectDevice(name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		err := m.svc.SelectDevice(ctx, name)
		return deviceSelectedMsg{name: name, err: err}
	}
}

func (m Model) selectLanguage(value string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		settled, err := m.svc.SelectLanguage(ctx, value)
		if err == nil {
			value = settled
		}
		return languageSelectedMsg{value: value, err: err}
	}
}

// submitSchedule sends an accepted draft to the scheduling service.
func (m Model) submitSchedule(line string, draft workflow.MeetingDraft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		id, err := m.svc.ScheduleMeeting(ctx, draft)
		return scheduledMsg{line: line, eventID: id, err: err}
	}
}

// submitMessage sends a confirmed message to the messaging service.
func (m Model) submitMessage(recipient, body string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.callCtx()
		defer cancel()
		err := m.svc.SendMessage(ctx, recipient, body)
		return messageSentMsg{recipient: recipient, err: err}
	}
}

// waitForConfig blocks on the config watcher until the next reload.
func (m Model) waitForConfig() tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-m.watcher.C
		if !ok {
			return nil
		}
		logging.Boot("config reloaded")
		return configReloadMsg(cfg)
	}
}
