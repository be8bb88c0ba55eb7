package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDisabledLoggingIsNoOp(t *testing.T) {
	dir := t.TempDir()
	if err := Initialize(dir, false); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	defer CloseAll()

	// must not panic or create files
	Poll("tick")
	PollError("boom")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no log files, got %d", len(entries))
	}
}

func TestEnabledLoggingWritesCategoryFile(t *testing.T) {
	dir := t.TempDir()
	if err := Initialize(dir, true); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	defer CloseAll()

	Schedule("trigger armed for line: %s", "schedule a meeting at 3 pm")

	matches, err := filepath.Glob(filepath.Join(dir, "logs", "*_schedule.log"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one schedule log file, got %v (err %v)", matches, err)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(string(data), "trigger armed") {
		t.Fatalf("log entry missing: %s", data)
	}
}
