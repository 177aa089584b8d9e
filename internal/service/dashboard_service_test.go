package service

import (
	"fmt"
	"testing"

	"github.com/stitchpoint/orderdesk/internal/analytics"
	"github.com/stitchpoint/orderdesk/internal/model/entity"
)

func TestTopCustomersCapsAtFive(t *testing.T) {
	orders := make([]entity.Order, 0, 8)
	for i := 0; i < 8; i++ {
		orders = append(orders, entity.Order{
			ID:           fmt.Sprintf("order-%d", i),
			CustomerName: fmt.Sprintf("Customer %d", i),
			Status:       entity.StatusDispatched,
			TotalAmount:  float64(100 * (i + 1)),
		})
	}

	top := analytics.TopEntities(orders, analytics.CustomerNameKey, topCustomersLimit)
	if len(top) != 5 {
		t.Fatalf("len(top) = %d, want 5", len(top))
	}
	// Highest realized revenue first.
	if top[0].Key != "Customer 7" {
		t.Errorf("top[0] = %+v", top[0])
	}
}
