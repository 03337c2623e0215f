package facility

import "errors"

var (
	// ErrInvalidClass is returned when a vehicle class is not in the pricing table.
	ErrInvalidClass = errors.New("facility: invalid vehicle class")
	// ErrFacilityFull is returned when no free slot exists.
	ErrFacilityFull = errors.New("facility: no free slot")
	// ErrSlotEmpty is returned when an operation targets a slot with no occupant.
	ErrSlotEmpty = errors.New("facility: slot empty")
	// ErrInvalidCapacity is returned when a ledger is built with capacity < 1.
	ErrInvalidCapacity = errors.New("facility: capacity must be positive")
	// ErrEmptyPricing is returned when a ledger is built without pricing rules.
	ErrEmptyPricing = errors.New("facility: empty pricing table")
	// ErrNegativeRate is returned when a pricing rule carries a negative rate.
	ErrNegativeRate = errors.New("facility: negative pricing rate")
)
