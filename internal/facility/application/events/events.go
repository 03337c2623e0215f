package events

import (
	"time"

	facility "carpark-cloud/internal/facility/domain"
)

// VehicleAdmitted is published after a vehicle is assigned a slot.
type VehicleAdmitted struct {
	SlotID     int
	VehicleID  string
	Class      facility.VehicleClass
	EnteredAt  time.Time
	OccurredAt time.Time
}

// ReceiptIssued is published after a release charged a vehicle.
type ReceiptIssued struct {
	Receipt    facility.Receipt
	OccurredAt time.Time
}
