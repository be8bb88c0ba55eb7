package tui

import (
	"context"

	"aimea/internal/backend"
	"aimea/internal/intent"
	"aimea/internal/workflow"
)

// Service is the slice of the transcription backend the interactive client
// consumes. *backend.Client satisfies it; tests substitute a stub.
type Service interface {
	ListDevices(ctx context.Context) ([]backend.Device, error)
	SelectDevice(ctx context.Context, name string) error
	ListLanguages(ctx context.Context) ([]backend.Language, error)
	SelectLanguage(ctx context.Context, value string) (string, error)
	FetchBuffer(ctx context.Context) ([]string, error)
	Classify(ctx context.Context, text string) (intent.Classification, error)
	FetchSummary(ctx context.Context) (string, error)
	ListContacts(ctx context.Context) ([]string, error)
	ScheduleMeeting(ctx context.Context, draft workflow.MeetingDraft) (string, error)
	SendMessage(ctx context.Context, recipient, body string) error
}

var _ Service = (*backend.Client)(nil)
