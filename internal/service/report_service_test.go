package service

import (
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/stitchpoint/orderdesk/internal/analytics"
	"github.com/stitchpoint/orderdesk/internal/store"
)

func TestBuildRejectsUnknownRange(t *testing.T) {
	svc := NewReportService(store.NewStore(nil, zap.NewNop()))
	if _, err := svc.Build("14d"); err == nil {
		t.Fatal("expected error for unknown range")
	}
}

func TestBuildEmptySnapshot(t *testing.T) {
	svc := NewReportService(store.NewStore(nil, zap.NewNop()))
	report, err := svc.Build("30d")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if report.Summary.TotalOrders != 0 {
		t.Fatalf("TotalOrders = %d", report.Summary.TotalOrders)
	}
	if report.Insights.MostPopularProduct != "N/A" {
		t.Fatalf("MostPopularProduct = %q", report.Insights.MostPopularProduct)
	}
}

func sampleReport() *analytics.Report {
	return &analytics.Report{
		DateRange: "Aug 1, 2025 - Aug 31, 2025",
		Summary: analytics.ReportSummary{
			TotalOrders:       4,
			CompletedOrders:   2,
			PendingOrders:     1,
			TotalRevenue:      900,
			AverageOrderValue: 450,
		},
		SalesByCoordinator: []analytics.CoordinatorRow{
			{Name: "Rahul", Orders: 3, Revenue: 600, CompletedOrders: 1},
		},
		StatusDistribution: []analytics.StatusCount{{Status: "Dispatched", Count: 2}},
		TopCustomers:       []analytics.EntityRollup{{Key: "Acme Co", Orders: 2, Revenue: 500}},
		Insights: analytics.ReportInsights{
			MostPopularProduct:    "Round Neck Tee",
			AverageProcessingDays: 7,
			CustomerRetentionPct:  50,
		},
	}
}

func TestExportCSV(t *testing.T) {
	svc := NewReportService(store.NewStore(nil, zap.NewNop()))
	out := string(svc.ExportCSV(sampleReport()))

	for _, want := range []string{
		"Metric,Value",
		"Total Revenue,900.00",
		"Average Order Value,450.00",
		"Most Popular Product,Round Neck Tee",
		"Customer Retention %,50",
		"Rahul,3,600.00,1",
		"Acme Co,2,500.00",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("csv missing %q:\n%s", want, out)
		}
	}
}

func TestExportJSON(t *testing.T) {
	svc := NewReportService(store.NewStore(nil, zap.NewNop()))
	data, err := svc.ExportJSON(sampleReport())
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var payload struct {
		Report analytics.Report `json:"report"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if payload.Report.Summary.TotalRevenue != 900 {
		t.Fatalf("TotalRevenue = %v", payload.Report.Summary.TotalRevenue)
	}
	if len(payload.Report.TopCustomers) != 1 || payload.Report.TopCustomers[0].Key != "Acme Co" {
		t.Fatalf("TopCustomers = %+v", payload.Report.TopCustomers)
	}
}

func TestExportXLSX(t *testing.T) {
	svc := NewReportService(store.NewStore(nil, zap.NewNop()))
	f, err := svc.ExportXLSX(sampleReport())
	if err != nil {
		t.Fatalf("ExportXLSX failed: %v", err)
	}
	defer f.Close()

	v, err := f.GetCellValue("Report", "A1")
	if err != nil || v != "Metric" {
		t.Fatalf("A1 = %q, err %v", v, err)
	}
	v, _ = f.GetCellValue("Report", "B2")
	if v != "Aug 1, 2025 - Aug 31, 2025" {
		t.Fatalf("B2 = %q", v)
	}
}
