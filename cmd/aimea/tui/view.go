package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the companion: transcript viewport, catalog panes, status
// line, and whichever modal (prompt head or summary) is active.
func (m Model) View() string {
	if !m.ready {
		return m.spinner.View() + " starting up..."
	}

	if m.summaryOpen {
		return m.overlay(m.renderSummary())
	}
	if len(m.prompts) > 0 {
		return m.overlay(m.renderPrompt(m.prompts[0]))
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderCatalogs())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("tab: focus · enter: select · s: summary · q: quit"))
	return b.String()
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render("aimea")
	parts := []string{title}
	if m.activeDevice != "" {
		parts = append(parts, m.styles.Muted.Render("mic: "+m.activeDevice))
	}
	if m.activeLanguage != "" {
		parts = append(parts, m.styles.Muted.Render("lang: "+m.activeLanguage))
	}
	return strings.Join(parts, "  ")
}

// renderTranscript draws every buffered line with its classification
// annotation underneath, when one exists.
func (m Model) renderTranscript() string {
	if len(m.lines) == 0 {
		return m.styles.Muted.Render("listening...")
	}
	var b strings.Builder
	for _, line := range m.lines {
		b.WriteString(m.styles.Line.Render(line))
		b.WriteString("\n")
		if ann := m.annotations[line]; ann != "" {
			b.WriteString(m.styles.Annotation.Render("  " + ann))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderCatalogs() string {
	devices := m.renderDevicePane()
	languages := m.renderLanguagePane()
	return lipgloss.JoinHorizontal(lipgloss.Top, devices, "   ", languages)
}

func (m Model) renderDevicePane() string {
	var b strings.Builder
	title := "Devices"
	if m.focus == focusDevices {
		title = m.styles.Active.Render(title)
	} else {
		title = m.styles.PaneTitle.Render(title)
	}
	b.WriteString(title)
	b.WriteString("\n")

	if !m.devicesReady {
		b.WriteString(m.styles.Muted.Render(m.spinner.View() + " loading..."))
		return b.String()
	}
	for i, d := range m.devices {
		label := d.Name
		if d.Name == m.activeDevice {
			label += " *"
		}
		if m.focus == focusDevices && i == m.deviceCursor {
			b.WriteString(m.styles.Selected.Render("> " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderLanguagePane() string {
	var b strings.Builder
	title := "Languages"
	if m.focus == focusLanguages {
		title = m.styles.Active.Render(title)
	} else {
		title = m.styles.PaneTitle.Render(title)
	}
	b.WriteString(title)
	b.WriteString("\n")

	if !m.languagesReady {
		b.WriteString(m.styles.Muted.Render(m.spinner.View() + " loading..."))
		return b.String()
	}
	for i, l := range m.languages {
		label := l.Label
		if l.Value == m.activeLanguage {
			label += " *"
		}
		if m.focus == focusLanguages && i == m.languageCursor {
			b.WriteString(m.styles.Selected.Render("> " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderStatus() string {
	if m.lastErr != nil {
		return m.styles.Error.Render("! " + m.lastErr.Error())
	}
	return m.styles.Status.Render(m.status)
}

// overlay centers modal content in the window.
func (m Model) overlay(content string) string {
	boxed := m.styles.Modal.Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxed)
}

func (m Model) renderSummary() string {
	body := m.summary
	if m.renderer != nil {
		if out, err := m.renderer.Render(m.summary); err == nil {
			body = out
		}
	}
	return m.styles.ModalTitle.Render("Conversation Summary") + "\n\n" +
		body + "\n" +
		m.styles.Help.Render("esc: close")
}

func (m Model) renderPrompt(p *prompt) string {
	switch p.kind {
	case promptScheduleConfirm:
		return m.styles.ModalTitle.Render("Schedule this meeting?") + "\n\n" +
			fmt.Sprintf("Title: %s\n", p.draft.Title) +
			fmt.Sprintf("Start: %s\n", p.draft.Start.Format("Mon Jan 2 15:04")) +
			fmt.Sprintf("End:   %s\n", p.draft.End.Format("Mon Jan 2 15:04")) +
			fmt.Sprintf("Notes: %s\n\n", p.draft.Description) +
			m.styles.Help.Render("enter/y: schedule · esc/n: cancel")

	case promptRecipientInput:
		return m.styles.ModalTitle.Render("Send a message") + "\n\n" +
			"Who should receive it?\n" +
			p.input.View() + "\n\n" +
			m.styles.Help.Render("enter: continue · esc: cancel")

	case promptBodyInput:
		return m.styles.ModalTitle.Render("Send a message") + "\n\n" +
			"What should it say?\n" +
			p.input.View() + "\n\n" +
			m.styles.Help.Render("enter: continue · esc: cancel")

	case promptDisambiguate:
		if p.resolving {
			return m.styles.ModalTitle.Render("Send a message") + "\n\n" +
				m.spinner.View() + " resolving " + p.msg.RecipientQuery + "...\n\n" +
				m.styles.Help.Render("esc: cancel")
		}
		var b strings.Builder
		b.WriteString(m.styles.ModalTitle.Render("Which contact?"))
		b.WriteString("\n\n")
		for i, c := range p.candidates {
			if i == p.cursor {
				b.WriteString(m.styles.Selected.Render("> " + c))
			} else {
				b.WriteString("  " + c)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("up/down: choose · enter: select · esc: cancel"))
		return b.String()

	case promptCompose:
		return m.styles.ModalTitle.Render("Message to "+p.msg.ResolvedRecipient) + "\n\n" +
			p.input.View() + "\n\n" +
			m.styles.Help.Render("enter: send · esc: cancel")
	}
	return ""
}
