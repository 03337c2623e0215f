package audit

import (
	"context"
	"errors"
	"log"
	"time"
)

// LogWriter is an audit logger backed by the process logger, used when no
// database is configured.
type LogWriter struct {
	logger *log.Logger
}

// NewLogWriter constructs a log-backed audit logger.
func NewLogWriter(logger *log.Logger) *LogWriter {
	if logger == nil {
		return nil
	}
	return &LogWriter{logger: logger}
}

// Log writes the entry as a single log line.
func (w *LogWriter) Log(ctx context.Context, entry Entry) error {
	_ = ctx
	if w == nil || w.logger == nil {
		return errors.New("audit logwriter: nil logger")
	}
	if entry.ID == "" {
		entry.ID = NewID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.PayloadDigest == "" {
		entry.PayloadDigest = DigestJSON(entry.Metadata)
	}
	w.logger.Printf("audit id=%s actor=%s role=%s action=%s resource=%s/%s ip=%s",
		entry.ID, entry.Actor, entry.Role, entry.Action, entry.ResourceType, entry.ResourceID, entry.IP)
	return nil
}
