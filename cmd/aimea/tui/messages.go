package tui

import (
	"github.com/google/uuid"

	"aimea/internal/backend"
	"aimea/internal/config"
	"aimea/internal/dispatch"
	"aimea/internal/intent"
)

// Messages for tea updates.
type (
	// bufferMsg carries one buffer poll result.
	bufferMsg struct {
		lines []string
		err   error
	}

	// devicesMsg / languagesMsg carry catalog poll results. Catalog polling
	// stops once a non-empty catalog arrives.
	devicesMsg struct {
		devices []backend.Device
		err     error
	}
	languagesMsg struct {
		languages []backend.Language
		err       error
	}

	// classifiedMsg carries one line's classification result.
	classifiedMsg struct {
		line   string
		result intent.Classification
		err    error
	}

	// triggerFiredMsg delivers a deferred action trigger after the
	// evidence-acceptance delay has elapsed.
	triggerFiredMsg struct {
		trigger dispatch.Trigger
	}

	// contactsMsg carries the contact catalog for one messaging prompt.
	contactsMsg struct {
		promptID uuid.UUID
		contacts []string
		err      error
	}

	summaryMsg struct {
		text string
		err  error
	}

	deviceSelectedMsg struct {
		name string
		err  error
	}
	languageSelectedMsg struct {
		value string
		err   error
	}

	// scheduledMsg / messageSentMsg terminate a workflow instance either way;
	// there is no automatic retry.
	scheduledMsg struct {
		line    string
		eventID string
		err     error
	}
	messageSentMsg struct {
		recipient string
		err       error
	}

	// configReloadMsg delivers a live config reload from the file watcher.
	configReloadMsg config.Config
)
