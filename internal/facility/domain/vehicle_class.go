package facility

import "strings"

// VehicleClass is the pricing category of a vehicle. The admissible set is
// whatever the ledger's pricing table was configured with; the named
// constants below are the default table's classes.
type VehicleClass string

const (
	ClassBike  VehicleClass = "bike"
	ClassCar   VehicleClass = "car"
	ClassEV    VehicleClass = "ev"
	ClassHeavy VehicleClass = "heavy"
)

// NormalizeClass canonicalizes a raw class string for pricing-table lookup.
func NormalizeClass(value string) VehicleClass {
	return VehicleClass(strings.ToLower(strings.TrimSpace(value)))
}
