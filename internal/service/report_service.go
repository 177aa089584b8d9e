package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/stitchpoint/orderdesk/internal/analytics"
	"github.com/stitchpoint/orderdesk/internal/store"
)

// reportRangeDays maps the supported report ranges to trailing days.
var reportRangeDays = map[string]int{
	"7d":   7,
	"30d":  30,
	"90d":  90,
	"365d": 365,
}

// ReportService builds date-ranged business reports from the snapshot and
// renders them for download.
type ReportService struct {
	store *store.Store
}

// NewReportService creates a report service.
func NewReportService(st *store.Store) *ReportService {
	return &ReportService{store: st}
}

// Build assembles the report for a named range ("7d", "30d", "90d", "365d").
func (s *ReportService) Build(rangeName string) (*analytics.Report, error) {
	days, ok := reportRangeDays[rangeName]
	if !ok {
		return nil, &store.ValidationError{Field: "range", Message: fmt.Sprintf("unknown report range %q", rangeName)}
	}

	snap := s.store.Snapshot()
	to := time.Now()
	from := to.AddDate(0, 0, -days)
	orders := analytics.FilterByDateRange(snap.Orders, from, to)

	report := analytics.BuildReport(orders, snap.Coordinators, from, to)
	return &report, nil
}

// ExportJSON renders the report as an indented JSON snapshot.
func (s *ReportService) ExportJSON(report *analytics.Report) ([]byte, error) {
	payload := struct {
		GeneratedAt time.Time         `json:"generated_at"`
		Report      *analytics.Report `json:"report"`
	}{
		GeneratedAt: time.Now(),
		Report:      report,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

// ExportCSV renders the report as flat key-value rows.
func (s *ReportService) ExportCSV(report *analytics.Report) []byte {
	var b strings.Builder
	writeRow := func(k, v string) {
		b.WriteString(k)
		b.WriteString(",")
		b.WriteString(v)
		b.WriteString("\n")
	}

	writeRow("Metric", "Value")
	writeRow("Date Range", report.DateRange)
	writeRow("Total Orders", fmt.Sprintf("%d", report.Summary.TotalOrders))
	writeRow("Completed Orders", fmt.Sprintf("%d", report.Summary.CompletedOrders))
	writeRow("Pending Orders", fmt.Sprintf("%d", report.Summary.PendingOrders))
	writeRow("Total Revenue", fmt.Sprintf("%.2f", report.Summary.TotalRevenue))
	writeRow("Average Order Value", fmt.Sprintf("%.2f", report.Summary.AverageOrderValue))
	writeRow("Most Popular Product", report.Insights.MostPopularProduct)
	writeRow("Average Processing Days", fmt.Sprintf("%d", report.Insights.AverageProcessingDays))
	writeRow("Customer Retention %", fmt.Sprintf("%d", report.Insights.CustomerRetentionPct))

	b.WriteString("\nCoordinator,Orders,Revenue,Completed\n")
	for _, row := range report.SalesByCoordinator {
		b.WriteString(fmt.Sprintf("%s,%d,%.2f,%d\n", row.Name, row.Orders, row.Revenue, row.CompletedOrders))
	}

	b.WriteString("\nCustomer,Orders,Revenue\n")
	for _, c := range report.TopCustomers {
		b.WriteString(fmt.Sprintf("%s,%d,%.2f\n", c.Key, c.Orders, c.Revenue))
	}

	return []byte(b.String())
}

// ExportXLSX renders the report as a styled workbook. The caller owns the
// returned file and must Close it.
func (s *ReportService) ExportXLSX(report *analytics.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Report"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	row := 1
	header := func(cells ...string) {
		for i, v := range cells {
			col, _ := excelize.ColumnNumberToName(i + 1)
			cell := fmt.Sprintf("%s%d", col, row)
			f.SetCellValue(sheet, cell, v)
			f.SetCellStyle(sheet, cell, cell, boldStyle)
		}
		row++
	}
	line := func(cells ...interface{}) {
		for i, v := range cells {
			col, _ := excelize.ColumnNumberToName(i + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
		}
		row++
	}

	header("Metric", "Value")
	line("Date Range", report.DateRange)
	line("Total Orders", report.Summary.TotalOrders)
	line("Completed Orders", report.Summary.CompletedOrders)
	line("Pending Orders", report.Summary.PendingOrders)
	line("Total Revenue", report.Summary.TotalRevenue)
	line("Average Order Value", report.Summary.AverageOrderValue)
	line("Most Popular Product", report.Insights.MostPopularProduct)
	line("Average Processing Days", report.Insights.AverageProcessingDays)
	line("Customer Retention %", report.Insights.CustomerRetentionPct)
	row++

	header("Coordinator", "Orders", "Revenue", "Completed")
	for _, r := range report.SalesByCoordinator {
		line(r.Name, r.Orders, r.Revenue, r.CompletedOrders)
	}
	row++

	header("Status", "Count")
	for _, sc := range report.StatusDistribution {
		line(sc.Status, sc.Count)
	}
	row++

	header("Customer", "Orders", "Revenue")
	for _, c := range report.TopCustomers {
		line(c.Key, c.Orders, c.Revenue)
	}

	f.SetColWidth(sheet, "A", "A", 26)
	f.SetColWidth(sheet, "B", "D", 16)
	return f, nil
}
