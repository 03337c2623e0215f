package events

import (
	"time"

	facility "carpark-cloud/internal/facility/domain"
)

// ReportGenerated is published after a daily report was generated and written
// to the configured sinks.
type ReportGenerated struct {
	Report     facility.DailyReport
	Text       string
	OccurredAt time.Time
}
