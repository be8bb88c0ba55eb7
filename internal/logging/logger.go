// Package logging provides categorized file-based logging for aimea.
// The interactive UI owns the terminal, so nothing may write to stdout;
// logs go to date-stamped per-category files under the state directory.
// Logging is a silent no-op until Initialize enables it.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Category represents a log category/system.
type Category string

const (
	CategoryBoot     Category = "boot"     // Startup, config, shutdown
	CategoryPoll     Category = "poll"     // Buffer and catalog polling
	CategoryClassify Category = "classify" // Classification requests/results
	CategorySchedule Category = "schedule" // Scheduling workflow
	CategoryMessage  Category = "message"  // Messaging workflow
	CategoryUI       Category = "ui"       // View/interaction events
)

// Logger wraps a standard logger writing to one category file.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.Mutex
	logsDir   string
	enabled   bool
)

// Initialize sets up the logging directory. With debug false the whole
// package stays a no-op.
func Initialize(stateDir string, debug bool) error {
	enabled = debug
	if !enabled {
		return nil
	}

	logsDir = filepath.Join(stateDir, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	Boot("=== aimea logging initialized ===")
	Boot("logs directory: %s", logsDir)
	return nil
}

// Get returns (or creates) the logger for a category. Returns a no-op logger
// while logging is disabled.
func Get(category Category) *Logger {
	if !enabled || logsDir == "" {
		return &Logger{category: category}
	}

	loggersMu.Lock()
	defer loggersMu.Unlock()

	if l, ok := loggers[category]; ok {
		return l
	}

	date := time.Now().Format("2006-01-02")
	logPath := filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", date, category))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open %s: %v\n", logPath, err)
		return &Logger{category: category}
	}

	l := &Logger{
		category: category,
		file:     file,
		logger:   log.New(file, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
	loggers[category] = l
	return l
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("[DEBUG] %s", fmt.Sprintf(format, args...))
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("[INFO] %s", fmt.Sprintf(format, args...))
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("[WARN] %s", fmt.Sprintf(format, args...))
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("[ERROR] %s", fmt.Sprintf(format, args...))
}

// CloseAll closes all open log files (call at shutdown).
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, l := range loggers {
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
}

// Convenience functions; no-ops while logging is disabled.

// Boot logs to the boot category.
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Info(format, args...)
}

// Poll logs to the poll category.
func Poll(format string, args ...interface{}) {
	Get(CategoryPoll).Info(format, args...)
}

// PollError logs an error to the poll category.
func PollError(format string, args ...interface{}) {
	Get(CategoryPoll).Error(format, args...)
}

// Classify logs to the classify category.
func Classify(format string, args ...interface{}) {
	Get(CategoryClassify).Info(format, args...)
}

// ClassifyError logs an error to the classify category.
func ClassifyError(format string, args ...interface{}) {
	Get(CategoryClassify).Error(format, args...)
}

// Schedule logs to the schedule category.
func Schedule(format string, args ...interface{}) {
	Get(CategorySchedule).Info(format, args...)
}

// ScheduleError logs an error to the schedule category.
func ScheduleError(format string, args ...interface{}) {
	Get(CategorySchedule).Error(format, args...)
}

// Message logs to the message category.
func Message(format string, args ...interface{}) {
	Get(CategoryMessage).Info(format, args...)
}

// MessageError logs an error to the message category.
func MessageError(format string, args ...interface{}) {
	Get(CategoryMessage).Error(format, args...)
}

// UI logs to the ui category.
func UI(format string, args ...interface{}) {
	Get(CategoryUI).Info(format, args...)
}
