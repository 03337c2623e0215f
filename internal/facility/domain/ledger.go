package facility

import "time"

// Occupancy records a vehicle currently parked in a slot.
type Occupancy struct {
	VehicleID string
	Class     VehicleClass
	EnteredAt time.Time
}

// Receipt summarizes a completed stay at release time.
type Receipt struct {
	SlotID    int
	VehicleID string
	Class     VehicleClass
	EnteredAt time.Time
	ExitedAt  time.Time
	Hours     float64
	Amount    float64
}

// SlotStatus is the projection of one occupied slot.
type SlotStatus struct {
	SlotID    int
	VehicleID string
	Class     VehicleClass
	Hours     float64
}

// StatusView is a read-only projection of current occupancy.
type StatusView struct {
	Total    int
	Occupied int
	Free     int
	Slots    []SlotStatus
}

// DailyReport carries the numeric fields of a daily summary. Rendering to
// text is a sink concern.
type DailyReport struct {
	GeneratedAt          time.Time
	Vehicles             int
	Revenue              float64
	AveragePerVehicle    float64
	OccupiedAtGeneration int
	Capacity             int
}

// Ledger owns the slot table, pricing, and running daily counters for one
// facility. It is not safe for concurrent use; callers serialize access.
type Ledger struct {
	slots    []*Occupancy // 1-based; index 0 unused
	pricing  PricingTable
	revenue  float64
	vehicles int
	history  []DailyReport
}

// NewLedger constructs a ledger with the given capacity and pricing table.
func NewLedger(capacity int, pricing PricingTable) (*Ledger, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if err := pricing.Validate(); err != nil {
		return nil, err
	}
	return &Ledger{
		slots:   make([]*Occupancy, capacity+1),
		pricing: pricing.clone(),
	}, nil
}

// Capacity returns the fixed slot count.
func (l *Ledger) Capacity() int { return len(l.slots) - 1 }

// Revenue returns the accumulated revenue since construction.
func (l *Ledger) Revenue() float64 { return l.revenue }

// VehiclesServed returns the running admission counter.
func (l *Ledger) VehiclesServed() int { return l.vehicles }

// Pricing returns a copy of the pricing table.
func (l *Ledger) Pricing() PricingTable { return l.pricing.clone() }

// FindFreeSlot scans slots in ascending index order and returns the first
// free one. Lowest index wins.
func (l *Ledger) FindFreeSlot() (int, bool) {
	for slot := 1; slot < len(l.slots); slot++ {
		if l.slots[slot] == nil {
			return slot, true
		}
	}
	return 0, false
}

// Admit assigns the vehicle to the lowest free slot and records its entry
// time. The daily vehicle counter increments only on success.
func (l *Ledger) Admit(vehicleID string, class VehicleClass, at time.Time) (int, error) {
	if _, ok := l.pricing[class]; !ok {
		return 0, ErrInvalidClass
	}
	slot, ok := l.FindFreeSlot()
	if !ok {
		return 0, ErrFacilityFull
	}
	l.slots[slot] = &Occupancy{VehicleID: vehicleID, Class: class, EnteredAt: at}
	l.vehicles++
	return slot, nil
}

// ComputeCharge prices the stay in the given slot as of at. It reads ledger
// state only; no mutation. Hours may be negative if the clock ran backwards
// between entry and at; the charge then stays at the base fee.
func (l *Ledger) ComputeCharge(slotID int, at time.Time) (amount, hours float64, err error) {
	occ := l.occupant(slotID)
	if occ == nil {
		return 0, 0, ErrSlotEmpty
	}
	hours = at.Sub(occ.EnteredAt).Hours()
	return l.pricing[occ.Class].Charge(hours), hours, nil
}

// Release charges the occupant, accrues revenue, frees the slot, and returns
// the receipt. This is the sole mutator that frees a slot and the sole source
// of revenue accrual.
func (l *Ledger) Release(slotID int, at time.Time) (Receipt, error) {
	occ := l.occupant(slotID)
	if occ == nil {
		return Receipt{}, ErrSlotEmpty
	}
	amount, hours, err := l.ComputeCharge(slotID, at)
	if err != nil {
		return Receipt{}, err
	}
	l.revenue += amount
	l.slots[slotID] = nil
	return Receipt{
		SlotID:    slotID,
		VehicleID: occ.VehicleID,
		Class:     occ.Class,
		EnteredAt: occ.EnteredAt,
		ExitedAt:  at,
		Hours:     hours,
		Amount:    amount,
	}, nil
}

// Snapshot projects current occupancy. Elapsed hours are recomputed against
// now, never stored.
func (l *Ledger) Snapshot(now time.Time) StatusView {
	view := StatusView{Total: l.Capacity()}
	for slot := 1; slot < len(l.slots); slot++ {
		occ := l.slots[slot]
		if occ == nil {
			continue
		}
		view.Occupied++
		view.Slots = append(view.Slots, SlotStatus{
			SlotID:    slot,
			VehicleID: occ.VehicleID,
			Class:     occ.Class,
			Hours:     now.Sub(occ.EnteredAt).Hours(),
		})
	}
	view.Free = view.Total - view.Occupied
	return view
}

// DailySummary builds the daily report and appends it to the history. The
// occupancy figure is the count at generation time, matching the facility's
// established reporting, not a tracked historical peak. Counters carry across
// day boundaries; no reset path exists.
func (l *Ledger) DailySummary(now time.Time) DailyReport {
	report := DailyReport{
		GeneratedAt:          now,
		Vehicles:             l.vehicles,
		Revenue:              l.revenue,
		OccupiedAtGeneration: l.occupiedCount(),
		Capacity:             l.Capacity(),
	}
	if l.vehicles > 0 {
		report.AveragePerVehicle = roundMoney(l.revenue / float64(l.vehicles))
	}
	l.history = append(l.history, report)
	return report
}

// ReportHistory returns a copy of all generated reports in order.
func (l *Ledger) ReportHistory() []DailyReport {
	return append([]DailyReport(nil), l.history...)
}

func (l *Ledger) occupiedCount() int {
	count := 0
	for slot := 1; slot < len(l.slots); slot++ {
		if l.slots[slot] != nil {
			count++
		}
	}
	return count
}

// occupant returns the occupancy for a slot id, or nil when the slot is free
// or the id is out of range. Out-of-range ids surface as ErrSlotEmpty at the
// operation boundary.
func (l *Ledger) occupant(slotID int) *Occupancy {
	if slotID < 1 || slotID >= len(l.slots) {
		return nil
	}
	return l.slots[slotID]
}
