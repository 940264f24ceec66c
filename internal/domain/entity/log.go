package entity

import "time"

// LogTimestampLayout log fayldagi vaqt formati: YYYY-MM-DD HH:MM:SS
const LogTimestampLayout = "2006-01-02 15:04:05"

// LogEntry one message written by the log writer
type LogEntry struct {
	ID        string
	RunID     string
	Message   string
	Timestamp time.Time
}

// Line renders the entry in the on-disk shape "[YYYY-MM-DD HH:MM:SS] message".
func (e LogEntry) Line() string {
	return "[" + e.Timestamp.Format(LogTimestampLayout) + "] " + e.Message
}
