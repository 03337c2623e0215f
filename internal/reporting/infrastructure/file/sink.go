package file

import (
	"context"
	"errors"
	"os"

	facility "carpark-cloud/internal/facility/domain"
)

// Sink appends daily report text to a file, creating it on first write.
type Sink struct {
	path string
}

// NewSink constructs a file sink.
func NewSink(path string) (*Sink, error) {
	if path == "" {
		return nil, errors.New("report file sink: empty path")
	}
	return &Sink{path: path}, nil
}

// Append writes the rendered report block in append mode.
func (s *Sink) Append(ctx context.Context, report facility.DailyReport, text string) error {
	_ = ctx
	_ = report
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(text + "\n"); err != nil {
		return err
	}
	return nil
}

// Path returns the sink's file path.
func (s *Sink) Path() string { return s.path }
