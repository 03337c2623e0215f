package application

import (
	"fmt"
	"strings"

	facility "carpark-cloud/internal/facility/domain"
)

// Renderer formats daily reports as the operator-facing text block. The
// textual layout is a rendering concern; the numeric fields are the contract.
type Renderer struct {
	currency string
}

// NewRenderer constructs a renderer with a currency symbol.
func NewRenderer(currency string) Renderer {
	return Renderer{currency: currency}
}

// Render produces the daily report text block.
func (r Renderer) Render(report facility.DailyReport) string {
	var b strings.Builder
	b.WriteString("=== DAILY PARKING REPORT ===\n")
	fmt.Fprintf(&b, "Date: %s\n", report.GeneratedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "Total Vehicles: %d\n", report.Vehicles)
	fmt.Fprintf(&b, "Total Revenue: %s%.2f\n", r.currency, report.Revenue)
	fmt.Fprintf(&b, "Average per vehicle: %s%.2f\n", r.currency, report.AveragePerVehicle)
	fmt.Fprintf(&b, "Peak Occupancy: %d/%d\n", report.OccupiedAtGeneration, report.Capacity)
	return b.String()
}
