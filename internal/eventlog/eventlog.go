// Package eventlog writes the engine's observable event stream: one event per
// line, appended to a file and durable as soon as the call returns. The log is
// the external verification surface for commands and playback milestones.
package eventlog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Log is an append-only, line-oriented event log.
type Log struct {
	*slog.Logger
	file *os.File
}

// Open creates or appends to the event log at path.
func Open(path string) (*Log, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	// O_APPEND writes go straight through os.File with no buffering in
	// between, so every record is on disk order-preserved when Log returns.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}

	return &Log{
		Logger: slog.New(slog.NewTextHandler(f, nil)),
		file:   f,
	}, nil
}

// Discard returns a log that drops every event. Used by tests and tools that
// do not care about the event stream.
func Discard() *Log {
	return &Log{Logger: slog.New(slog.DiscardHandler)}
}

// Close closes the underlying file.
func (l *Log) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
