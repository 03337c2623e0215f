package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carpark-cloud/internal/eventing"
	facility "carpark-cloud/internal/facility/domain"
	"carpark-cloud/internal/observability/metrics"
	"carpark-cloud/internal/reporting/application/events"
)

// SummarySource produces daily reports from the facility ledger.
type SummarySource interface {
	DailySummary(ctx context.Context) facility.DailyReport
	ReportHistory(ctx context.Context) []facility.DailyReport
}

// Sink receives a generated report.
type Sink interface {
	Append(ctx context.Context, report facility.DailyReport, text string) error
}

// ReportService generates daily summaries and fans them out to sinks.
type ReportService struct {
	source   SummarySource
	renderer Renderer
	sinks    []Sink
	bus      eventing.EventBus
	clock    facility.Clock
}

// Option configures optional service collaborators.
type Option func(*ReportService)

// WithSink appends a report sink.
func WithSink(sink Sink) Option {
	return func(s *ReportService) {
		if sink != nil {
			s.sinks = append(s.sinks, sink)
		}
	}
}

// WithEventBus publishes ReportGenerated events.
func WithEventBus(bus eventing.EventBus) Option {
	return func(s *ReportService) { s.bus = bus }
}

// NewReportService constructs a report service.
func NewReportService(source SummarySource, renderer Renderer, clock facility.Clock, opts ...Option) (*ReportService, error) {
	if source == nil {
		return nil, errors.New("report service: nil source")
	}
	if clock == nil {
		return nil, errors.New("report service: nil clock")
	}
	s := &ReportService{source: source, renderer: renderer, clock: clock}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Generate builds the daily report, writes it to all sinks, and returns the
// report with its rendered text.
func (s *ReportService) Generate(ctx context.Context) (facility.DailyReport, string, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportGenerate(result, time.Since(start))
	}()

	report := s.source.DailySummary(ctx)
	text := s.renderer.Render(report)

	for _, sink := range s.sinks {
		if err := sink.Append(ctx, report, text); err != nil {
			result = metrics.ResultError
			return report, text, fmt.Errorf("report service: sink append: %w", err)
		}
	}

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.ReportGenerated{
			Report:     report,
			Text:       text,
			OccurredAt: s.clock.Now(),
		})
	}
	return report, text, nil
}

// History returns all generated reports in order.
func (s *ReportService) History(ctx context.Context) []facility.DailyReport {
	return s.source.ReportHistory(ctx)
}

// Render exposes the renderer for read-only consumers.
func (s *ReportService) Render(report facility.DailyReport) string {
	return s.renderer.Render(report)
}
