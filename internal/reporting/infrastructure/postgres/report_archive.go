package postgres

import (
	"context"
	"database/sql"
	"errors"

	facility "carpark-cloud/internal/facility/domain"
)

// ReportArchive persists generated daily reports.
type ReportArchive struct {
	db *sql.DB
}

// NewReportArchive constructs an archive.
func NewReportArchive(db *sql.DB) *ReportArchive {
	return &ReportArchive{db: db}
}

// Append inserts a report row together with its rendered text.
func (a *ReportArchive) Append(ctx context.Context, report facility.DailyReport, text string) error {
	if a == nil || a.db == nil {
		return errors.New("report archive: nil db")
	}
	_, err := a.db.ExecContext(ctx, `
INSERT INTO daily_reports (generated_at, vehicles, revenue, average_per_vehicle, occupied_slots, capacity, report_text)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		report.GeneratedAt, report.Vehicles, report.Revenue,
		report.AveragePerVehicle, report.OccupiedAtGeneration, report.Capacity, text)
	return err
}
