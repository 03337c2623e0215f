package interfaces

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	facility "carpark-cloud/internal/facility/domain"
)

// ErrNoReports is returned when an export is requested before any report exists.
var ErrNoReports = errors.New("reporting: no reports generated")

// BuildReportPDF renders a minimal PDF for the latest daily report with the
// full history as an items table.
func BuildReportPDF(history []facility.DailyReport, currency string) ([]byte, error) {
	if len(history) == 0 {
		return nil, ErrNoReports
	}
	latest := history[len(history)-1]

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Daily Parking Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", latest.GeneratedAt.Format("2006-01-02")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Vehicles: %d", latest.Vehicles))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Revenue (%s): %.2f", currency, latest.Revenue))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Average per vehicle (%s): %.2f", currency, latest.AveragePerVehicle))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Peak Occupancy: %d/%d", latest.OccupiedAtGeneration, latest.Capacity))
	pdf.Ln(8)

	// History table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Generated", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Vehicles", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Revenue", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Occupied", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, report := range history {
		pdf.CellFormat(40, 6, report.GeneratedAt.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", report.Vehicles), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", report.Revenue), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d/%d", report.OccupiedAtGeneration, report.Capacity), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildReportXLSX renders a minimal XLSX for the latest daily report with the
// full history on a second sheet.
func BuildReportXLSX(history []facility.DailyReport, currency string) ([]byte, error) {
	if len(history) == 0 {
		return nil, ErrNoReports
	}
	latest := history[len(history)-1]

	f := excelize.NewFile()
	summarySheet := "summary"
	historySheet := "history"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(historySheet)

	_ = f.SetCellValue(summarySheet, "A1", "Daily Parking Report")
	_ = f.SetCellValue(summarySheet, "A3", "Date")
	_ = f.SetCellValue(summarySheet, "B3", latest.GeneratedAt.Format("2006-01-02"))
	_ = f.SetCellValue(summarySheet, "A4", "Total Vehicles")
	_ = f.SetCellValue(summarySheet, "B4", latest.Vehicles)
	_ = f.SetCellValue(summarySheet, "A5", "Total Revenue")
	_ = f.SetCellValue(summarySheet, "B5", latest.Revenue)
	_ = f.SetCellValue(summarySheet, "A6", "Average per vehicle")
	_ = f.SetCellValue(summarySheet, "B6", latest.AveragePerVehicle)
	_ = f.SetCellValue(summarySheet, "A7", "Peak Occupancy")
	_ = f.SetCellValue(summarySheet, "B7", fmt.Sprintf("%d/%d", latest.OccupiedAtGeneration, latest.Capacity))
	_ = f.SetCellValue(summarySheet, "A8", "Currency")
	_ = f.SetCellValue(summarySheet, "B8", currency)

	_ = f.SetCellValue(historySheet, "A1", "Generated")
	_ = f.SetCellValue(historySheet, "B1", "Vehicles")
	_ = f.SetCellValue(historySheet, "C1", "Revenue")
	_ = f.SetCellValue(historySheet, "D1", "Average")
	_ = f.SetCellValue(historySheet, "E1", "Occupied")
	for i, report := range history {
		row := i + 2
		_ = f.SetCellValue(historySheet, fmt.Sprintf("A%d", row), report.GeneratedAt.Format("2006-01-02 15:04"))
		_ = f.SetCellValue(historySheet, fmt.Sprintf("B%d", row), report.Vehicles)
		_ = f.SetCellValue(historySheet, fmt.Sprintf("C%d", row), report.Revenue)
		_ = f.SetCellValue(historySheet, fmt.Sprintf("D%d", row), report.AveragePerVehicle)
		_ = f.SetCellValue(historySheet, fmt.Sprintf("E%d", row), fmt.Sprintf("%d/%d", report.OccupiedAtGeneration, report.Capacity))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
