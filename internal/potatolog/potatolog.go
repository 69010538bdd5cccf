// Package potatolog keeps structured log output in memory, so that it can be
// shown inside of the TUI.
package potatolog

import (
	"encoding/json"
	"fmt"
	"sync"
)

// LogEntry is a single log entry.
type LogEntry = map[string]any

// GlobalMemoryLogReaderWriter is a global MemoryLogReaderWriter.
var GlobalMemoryLogReaderWriter = MemoryLogReaderWriter{
	mtx: sync.Mutex{},
	log: []LogEntry{},
}

// MemoryLogReaderWriter is a simple in-memory log reader and writer.
type MemoryLogReaderWriter struct {
	mtx sync.Mutex
	log []LogEntry
}

// Write appends a log entry to the log.
func (w *MemoryLogReaderWriter) Write(p []byte) (int, error) {
	entry := LogEntry{}
	err := json.Unmarshal(p, &entry)
	if err != nil {
		return 0, fmt.Errorf("could not unmarshal log entry (err:%s) (input:'%s')", err.Error(), string(p))
	}

	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.log = append(w.log, entry)
	return len(p), nil
}

// Get returns the log.
func (w *MemoryLogReaderWriter) Get() []LogEntry {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return append([]LogEntry{}, w.log...)
}

// Last returns the latest log entry, if there is one.
func (w *MemoryLogReaderWriter) Last() (LogEntry, bool) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	if len(w.log) == 0 {
		return nil, false
	}
	return w.log[len(w.log)-1], true
}

// Summarize returns the level and message of a log entry (empty strings, if
// absent).
func Summarize(entry LogEntry) (level string, message string) {
	level, _ = entry["level"].(string)
	message, _ = entry["message"].(string)
	return level, message
}

// LogReader allows reading access to a log.
type LogReader interface {
	Get() []LogEntry
	Last() (LogEntry, bool)
}
