package application

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"carpark-cloud/internal/eventing"
	"carpark-cloud/internal/facility/application/events"
	facility "carpark-cloud/internal/facility/domain"
	"carpark-cloud/internal/observability/metrics"
)

// ReceiptArchive persists issued receipts.
type ReceiptArchive interface {
	Append(ctx context.Context, receipt facility.Receipt) error
}

// AdmitRequest is the admit operation input.
type AdmitRequest struct {
	VehicleNo   string `json:"vehicle_no"`
	VehicleType string `json:"vehicle_type"`
}

// AdmitResponse is the admit operation output.
type AdmitResponse struct {
	SlotID    int       `json:"slot"`
	EnteredAt time.Time `json:"entered_at"`
}

// Service serializes access to the facility ledger. Admit and release are
// atomic lookup-then-mutate units under one mutex, so two callers can never
// be assigned the same free slot.
type Service struct {
	mu      sync.Mutex
	ledger  *facility.Ledger
	clock   facility.Clock
	bus     eventing.EventBus
	archive ReceiptArchive
	logger  *log.Logger
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithEventBus publishes admitted/receipt events on the bus.
func WithEventBus(bus eventing.EventBus) Option {
	return func(s *Service) { s.bus = bus }
}

// WithReceiptArchive forwards receipts to an archive.
func WithReceiptArchive(archive ReceiptArchive) Option {
	return func(s *Service) { s.archive = archive }
}

// WithLogger reports archive failures on the process logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService constructs a facility service.
func NewService(ledger *facility.Ledger, clock facility.Clock, opts ...Option) (*Service, error) {
	if ledger == nil {
		return nil, errors.New("facility service: nil ledger")
	}
	if clock == nil {
		return nil, errors.New("facility service: nil clock")
	}
	s := &Service{ledger: ledger, clock: clock}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Admit assigns a slot to the vehicle and records its entry time.
func (s *Service) Admit(ctx context.Context, req AdmitRequest) (AdmitResponse, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveAdmit(result, time.Since(start))
	}()

	// Admissibility is decided by the ledger's configured pricing table.
	class := facility.NormalizeClass(req.VehicleType)

	now := s.clock.Now()
	s.mu.Lock()
	slot, err := s.ledger.Admit(req.VehicleNo, class, now)
	occupied := s.ledger.Snapshot(now).Occupied
	s.mu.Unlock()
	if err != nil {
		result = metrics.ResultError
		return AdmitResponse{}, err
	}
	metrics.SetOccupiedSlots(occupied)

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.VehicleAdmitted{
			SlotID:     slot,
			VehicleID:  req.VehicleNo,
			Class:      class,
			EnteredAt:  now,
			OccurredAt: now,
		})
	}
	return AdmitResponse{SlotID: slot, EnteredAt: now}, nil
}

// Release charges the occupant of the slot, frees it, and returns the receipt.
func (s *Service) Release(ctx context.Context, slotID int) (facility.Receipt, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveRelease(result, time.Since(start))
	}()

	now := s.clock.Now()
	s.mu.Lock()
	receipt, err := s.ledger.Release(slotID, now)
	occupied := s.ledger.Snapshot(now).Occupied
	s.mu.Unlock()
	if err != nil {
		result = metrics.ResultError
		return facility.Receipt{}, err
	}
	metrics.SetOccupiedSlots(occupied)
	metrics.AddRevenue(receipt.Amount)

	// The slot is freed and revenue accrued at this point; an archive failure
	// must not void the receipt.
	if s.archive != nil {
		if err := s.archive.Append(ctx, receipt); err != nil {
			metrics.IncArchiveFailure()
			if s.logger != nil {
				s.logger.Printf("receipt archive append failed: slot=%d vehicle=%s: %v",
					receipt.SlotID, receipt.VehicleID, err)
			}
		}
	}
	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.ReceiptIssued{Receipt: receipt, OccurredAt: now})
	}
	return receipt, nil
}

// ComputeCharge prices the stay in a slot as of now without releasing it.
func (s *Service) ComputeCharge(ctx context.Context, slotID int) (amount, hours float64, err error) {
	_ = ctx
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.ComputeCharge(slotID, now)
}

// Status returns the current occupancy projection.
func (s *Service) Status(ctx context.Context) facility.StatusView {
	_ = ctx
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Snapshot(now)
}

// Totals returns the running revenue and vehicles-served counters.
func (s *Service) Totals(ctx context.Context) (revenue float64, vehicles int) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Revenue(), s.ledger.VehiclesServed()
}

// DailySummary generates the daily report and appends it to the history.
func (s *Service) DailySummary(ctx context.Context) facility.DailyReport {
	_ = ctx
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.DailySummary(now)
}

// ReportHistory returns all generated reports in order.
func (s *Service) ReportHistory(ctx context.Context) []facility.DailyReport {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.ReportHistory()
}
