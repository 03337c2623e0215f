// Command opconsole is an interactive operator console for a single facility.
// It drives the facility and report services in-process; all business logic
// stays in the services.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"carpark-cloud/internal/config"
	facilityapp "carpark-cloud/internal/facility/application"
	facility "carpark-cloud/internal/facility/domain"
	"carpark-cloud/internal/observability/metrics"
	reportingapp "carpark-cloud/internal/reporting/application"
	reportfile "carpark-cloud/internal/reporting/infrastructure/file"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	metrics.Init()

	ledger, err := facility.NewLedger(cfg.Capacity, cfg.PricingTable())
	if err != nil {
		log.Fatalf("ledger error: %v", err)
	}
	clock := facility.SystemClock{}
	service, err := facilityapp.NewService(ledger, clock)
	if err != nil {
		log.Fatalf("facility service error: %v", err)
	}
	sink, err := reportfile.NewSink(cfg.ReportFile)
	if err != nil {
		log.Fatalf("report sink error: %v", err)
	}
	reports, err := reportingapp.NewReportService(service, reportingapp.NewRenderer(cfg.Currency), clock, reportingapp.WithSink(sink))
	if err != nil {
		log.Fatalf("report service error: %v", err)
	}

	classHint := classList(ledger.Pricing())
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Println("\n==================================================")
		fmt.Println("SMART PARKING MANAGEMENT SYSTEM")
		fmt.Println("1. Vehicle Entry  2. Vehicle Exit  3. Display Status")
		fmt.Println("4. Daily Report   5. Quit")
		fmt.Print("Enter choice (1-5): ")
		if !scanner.Scan() {
			return
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			handleEntry(ctx, scanner, service, classHint)
		case "2":
			handleExit(ctx, scanner, service, cfg.Currency)
		case "3":
			handleStatus(ctx, service, cfg.Currency)
		case "4":
			if _, text, err := reports.Generate(ctx); err != nil {
				fmt.Printf("Report error: %v\n", err)
			} else {
				fmt.Println(text)
				fmt.Printf("Report saved to %s\n", sink.Path())
			}
		case "5":
			fmt.Println("Thank you for using Smart Parking System!")
			return
		default:
			fmt.Println("Invalid choice! Try again.")
		}
	}
}

func handleEntry(ctx context.Context, scanner *bufio.Scanner, service *facilityapp.Service, classHint string) {
	fmt.Print("Vehicle Number: ")
	if !scanner.Scan() {
		return
	}
	vehicleNo := strings.ToUpper(strings.TrimSpace(scanner.Text()))

	fmt.Printf("Vehicle Type (%s): ", classHint)
	if !scanner.Scan() {
		return
	}
	vehicleType := strings.ToLower(strings.TrimSpace(scanner.Text()))

	resp, err := service.Admit(ctx, facilityapp.AdmitRequest{VehicleNo: vehicleNo, VehicleType: vehicleType})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Vehicle %s (%s) parked in Slot %d at %s\n",
		vehicleNo, vehicleType, resp.SlotID, resp.EnteredAt.Format("15:04:05"))
}

func classList(pricing facility.PricingTable) string {
	classes := make([]string, 0, len(pricing))
	for class := range pricing {
		classes = append(classes, string(class))
	}
	sort.Strings(classes)
	return strings.Join(classes, "/")
}

func handleExit(ctx context.Context, scanner *bufio.Scanner, service *facilityapp.Service, currency string) {
	fmt.Print("Enter Slot Number: ")
	if !scanner.Scan() {
		return
	}
	slot, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		fmt.Println("Invalid slot number!")
		return
	}

	receipt, err := service.Release(ctx, slot)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Vehicle %s (%s) exiting Slot %d\n", receipt.VehicleID, receipt.Class, receipt.SlotID)
	fmt.Printf("Entry: %s | Exit: %s\n",
		receipt.EnteredAt.Format("15:04:05"), receipt.ExitedAt.Format("15:04:05"))
	fmt.Printf("Duration: %.2f hours | Charges: %s%.2f\n", receipt.Hours, currency, receipt.Amount)
	fmt.Printf("Slot %d now FREE.\n", receipt.SlotID)
}

func handleStatus(ctx context.Context, service *facilityapp.Service, currency string) {
	view := service.Status(ctx)
	revenue, vehicles := service.Totals(ctx)
	fmt.Println("\n=== PARKING LOT STATUS ===")
	fmt.Printf("Total Slots: %d | Occupied: %d | Free: %d\n", view.Total, view.Occupied, view.Free)
	fmt.Printf("Today's Revenue: %s%.2f | Vehicles Served: %d\n", currency, revenue, vehicles)
	fmt.Println("\nOccupied Slots:")
	for _, slot := range view.Slots {
		fmt.Printf("Slot %d: %s (%s) - %.1fh\n", slot.SlotID, slot.VehicleID, slot.Class, slot.Hours)
	}
}
