package service

import (
	"errors"
	"testing"

	"github.com/stitchpoint/orderdesk/internal/model/entity"
	"github.com/stitchpoint/orderdesk/internal/store"
)

func validOrderRequest() *OrderRequest {
	return &OrderRequest{
		CustomerName:       "Acme Co",
		OrderDate:          "2025-08-01",
		DeliveryDate:       "2025-08-15",
		ProductCategoryID:  "cat-001",
		ProductNameID:      "prod-001",
		ColorID:            "color-001",
		SalesCoordinatorID: "coord-001",
		Sizes:              entity.SizeBreakdown{S: 5, M: 10, XL: 5},
		CostPerPc:          12.5,
		OrderType:          entity.OrderTypeNew,
		Priority:           entity.PriorityMedium,
		BrandingMethod:     entity.BrandingScreenPrint,
		Placement1:         "front",
		Placement1Size:     "A4",
		Description:        "front print tees",
	}
}

func TestOrderRequestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*OrderRequest)
		field  string
	}{
		{"valid", func(r *OrderRequest) {}, ""},
		{"bad order type", func(r *OrderRequest) { r.OrderType = "bulk" }, "order_type"},
		{"bad priority", func(r *OrderRequest) { r.Priority = "critical" }, "priority"},
		{"bad branding", func(r *OrderRequest) { r.BrandingMethod = "stamp" }, "branding_method"},
		{"bad status", func(r *OrderRequest) { r.Status = "done" }, "order_status"},
		{"negative size", func(r *OrderRequest) { r.Sizes = entity.SizeBreakdown{M: -1, L: 5} }, "size_breakdown"},
		{"empty sizes", func(r *OrderRequest) { r.Sizes = entity.SizeBreakdown{} }, "size_breakdown"},
		{"negative cost", func(r *OrderRequest) { r.CostPerPc = -1 }, "cost_per_pc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validOrderRequest()
			tt.mutate(req)
			err := req.validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			var ve *store.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Fatalf("field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestOrderRequestToEntityRecomputesTotals(t *testing.T) {
	req := validOrderRequest()
	var order entity.Order
	if err := req.toEntity(&order); err != nil {
		t.Fatalf("toEntity failed: %v", err)
	}

	if order.TotalQty != 20 {
		t.Fatalf("TotalQty = %d, want 20", order.TotalQty)
	}
	if order.TotalAmount != 250 {
		t.Fatalf("TotalAmount = %v, want 250", order.TotalAmount)
	}
	if order.OrderDate.Format("2006-01-02") != "2025-08-01" {
		t.Fatalf("OrderDate = %v", order.OrderDate)
	}
	if order.Placement1 != "front" || order.Placement1Size != "A4" {
		t.Fatalf("placements not carried: %q %q", order.Placement1, order.Placement1Size)
	}
}

func TestOrderRequestToEntityClearsPlacementsWithoutBranding(t *testing.T) {
	req := validOrderRequest()
	req.BrandingMethod = entity.BrandingNone
	req.Placement2 = "back"

	var order entity.Order
	if err := req.toEntity(&order); err != nil {
		t.Fatalf("toEntity failed: %v", err)
	}
	if order.Placement1 != "" || order.Placement2 != "" {
		t.Fatalf("placements should be cleared, got %q %q", order.Placement1, order.Placement2)
	}
}

func TestOrderRequestToEntityRejectsBadDates(t *testing.T) {
	req := validOrderRequest()
	req.DeliveryDate = "15/08/2025"

	var order entity.Order
	err := req.toEntity(&order)
	var ve *store.ValidationError
	if !errors.As(err, &ve) || ve.Field != "delivery_date" {
		t.Fatalf("expected delivery_date validation error, got %v", err)
	}
}

func TestOrderRequestToEntityOptionalEDD(t *testing.T) {
	req := validOrderRequest()
	var order entity.Order
	if err := req.toEntity(&order); err != nil {
		t.Fatalf("toEntity failed: %v", err)
	}
	if order.EDD != nil {
		t.Fatal("EDD should stay nil when omitted")
	}

	req.EDD = "2025-08-10"
	if err := req.toEntity(&order); err != nil {
		t.Fatalf("toEntity failed: %v", err)
	}
	if order.EDD == nil || order.EDD.Format("2006-01-02") != "2025-08-10" {
		t.Fatalf("EDD = %v", order.EDD)
	}
}
