// Package tui implements the interactive live-transcript companion: a single
// bubbletea event loop that polls the backend, classifies new lines, and
// walks the human-confirmed scheduling and messaging workflows.
//
// All external calls run as commands off the loop; the model (dedup ledger
// included) is mutated only between messages, so check-then-mark steps are
// atomic within one loop turn.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"aimea/cmd/aimea/ui"
	"aimea/internal/backend"
	"aimea/internal/config"
	"aimea/internal/dispatch"
	"aimea/internal/ledger"
	"aimea/internal/logging"
)

// focusArea determines which pane receives navigation keys when no prompt is
// active.
type focusArea int

const (
	focusTranscript focusArea = iota
	focusDevices
	focusLanguages
)

// Model is the main model for the interactive companion.
type Model struct {
	svc        Service
	cfg        config.Config
	dispatcher *dispatch.Dispatcher
	styles     ui.Styles

	// UI components
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	ready  bool
	width  int
	height int
	focus  focusArea

	// Transcript state, re-rendered whole every poll.
	lines       []string
	annotations map[string]string

	// Catalogs; polled until first non-empty result.
	devices        []backend.Device
	devicesReady   bool
	deviceCursor   int
	activeDevice   string
	languages      []backend.Language
	languagesReady bool
	languageCursor int
	activeLanguage string

	// Summary pane (on demand).
	summary     string
	summaryOpen bool

	// Pending confirmation prompts, FIFO; head is on screen.
	prompts []*prompt

	// Armed deferred triggers keyed by kind|line; the ledger guarantees at
	// most one per key, this map makes them observable.
	armed map[string]time.Time

	status  string
	lastErr error

	watcher *config.Watcher
	now     func() time.Time
}

// New builds the model around a backend service and configuration. watcher
// may be nil when config live-reload is unavailable.
func New(svc Service, cfg config.Config, watcher *config.Watcher) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		svc:         svc,
		cfg:         cfg,
		dispatcher:  dispatch.New(ledger.New()),
		styles:      ui.DefaultStyles(),
		spinner:     sp,
		annotations: make(map[string]string),
		armed:       make(map[string]time.Time),
		status:      "waiting for transcript...",
		watcher:     watcher,
		now:         time.Now,
	}
}

// Init starts the polling loops and the config reload listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		m.fetchBuffer(),
		m.fetchDevices(),
		m.fetchLanguages(),
	}
	if m.watcher != nil {
		cmds = append(cmds, m.waitForConfig())
	}
	return tea.Batch(cmds...)
}

// Run starts the interactive session.
func Run(svc Service, cfg config.Config, watcher *config.Watcher) error {
	logging.UI("interactive session starting")
	p := tea.NewProgram(New(svc, cfg, watcher), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// triggerKey identifies an armed deferred trigger.
func triggerKey(t dispatch.Trigger) string {
	return string(t.Kind) + "|" + t.Line
}
