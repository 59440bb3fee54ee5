package timesheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"timetrack/internal/domain/employee"
)

func formatPeriod(ts Timesheet) string {
	if ts.PeriodKey != "" {
		return ts.PeriodKey
	}
	if ts.StartDate != nil && ts.EndDate != nil {
		return DateKey(*ts.StartDate) + " to " + DateKey(*ts.EndDate)
	}
	return ""
}

// BuildPDF renders a one-page timesheet summary with its per-day lines.
func BuildPDF(ts Timesheet, emp employee.Employee) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Timesheet")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", emp.Name))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", formatPeriod(ts)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", ts.Status))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Working days: %d   Leaves: %d   Holidays: %d", ts.WorkingDays, ts.Leaves, ts.Holidays))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Emergencies: %d   Absences: %d", ts.Emergencies, ts.Absences))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total salary: %.2f", ts.TotalSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Advances: %.2f", ts.AdvancesTotal))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net payable: %.2f", ts.NetPayable))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(28, 7, "Date")
	pdf.Cell(24, 7, "Status")
	pdf.Cell(50, 7, "Client")
	pdf.Cell(40, 7, "Role")
	pdf.Cell(24, 7, "Salary")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	for _, entry := range ts.Entries {
		pdf.Cell(28, 6, DateKey(entry.EntryDate))
		pdf.Cell(24, 6, entry.Status)
		pdf.Cell(50, 6, entry.ClientName)
		pdf.Cell(40, 6, entry.JobRole)
		pdf.Cell(24, 6, fmt.Sprintf("%.2f", entry.DailySalary))
		pdf.Ln(6)
	}

	return pdf
}

// WriteCSV streams the daily entries as CSV.
func WriteCSV(w io.Writer, ts Timesheet) error {
	writer := csv.NewWriter(w)
	header := []string{
		"date", "status", "client", "jobRole", "halfDay", "publicHoliday",
		"weekend", "emergencyDuty", "emergencyAmount", "manualOverride",
		"manualAmount", "dailySalary", "notes",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, entry := range ts.Entries {
		record := []string{
			DateKey(entry.EntryDate),
			entry.Status,
			entry.ClientName,
			entry.JobRole,
			strconv.FormatBool(entry.HalfDay),
			strconv.FormatBool(entry.PublicHoliday),
			strconv.FormatBool(entry.Weekend),
			strconv.FormatBool(entry.EmergencyDuty),
			strconv.FormatFloat(entry.EmergencyAmount, 'f', 2, 64),
			strconv.FormatBool(entry.ManualOverride),
			strconv.FormatFloat(entry.ManualAmount, 'f', 2, 64),
			strconv.FormatFloat(entry.DailySalary, 'f', 2, 64),
			entry.Notes,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
