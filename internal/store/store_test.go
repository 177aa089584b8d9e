package store

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/stitchpoint/orderdesk/internal/analytics"
	"github.com/stitchpoint/orderdesk/internal/model/entity"
	"github.com/stitchpoint/orderdesk/internal/repository"
)

func refSnapshot() *Snapshot {
	return &Snapshot{
		Categories: []entity.ProductCategory{
			{ID: "cat-001", Name: "T-Shirts"},
			{ID: "cat-002", Name: "Hoodies"},
		},
		ProductNames: []entity.ProductName{
			{ID: "prod-001", Name: "Round Neck Tee", CategoryID: "cat-001"},
			{ID: "prod-002", Name: "Zip Hoodie", CategoryID: "cat-002", ColorIDs: entity.StringList{"color-002"}},
		},
		Colors: []entity.Color{
			{ID: "color-001", Name: "Black"},
			{ID: "color-002", Name: "Navy"},
		},
		Coordinators: []entity.SalesCoordinator{
			{ID: "coord-001", Name: "Rahul"},
		},
	}
}

func refOrder() *entity.Order {
	return &entity.Order{
		ProductCategoryID:  "cat-001",
		ProductNameID:      "prod-001",
		ColorID:            "color-001",
		SalesCoordinatorID: "coord-001",
	}
}

func TestValidateReferences(t *testing.T) {
	snap := refSnapshot()

	if err := validateReferences(snap, refOrder()); err != nil {
		t.Fatalf("valid order rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*entity.Order)
		field  string
	}{
		{"unknown category", func(o *entity.Order) { o.ProductCategoryID = "cat-404" }, "product_category_id"},
		{"unknown product", func(o *entity.Order) { o.ProductNameID = "prod-404" }, "product_name_id"},
		{"product outside category", func(o *entity.Order) { o.ProductNameID = "prod-002" }, "product_name_id"},
		{"unknown color", func(o *entity.Order) { o.ColorID = "color-404" }, "color_id"},
		{"unknown coordinator", func(o *entity.Order) { o.SalesCoordinatorID = "coord-404" }, "sales_coordinator_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := refOrder()
			tt.mutate(order)
			err := validateReferences(snap, order)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Fatalf("field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestValidateReferencesColorAllowList(t *testing.T) {
	snap := refSnapshot()

	order := refOrder()
	order.ProductCategoryID = "cat-002"
	order.ProductNameID = "prod-002"
	order.ColorID = "color-002"
	if err := validateReferences(snap, order); err != nil {
		t.Fatalf("allow-listed color rejected: %v", err)
	}

	order.ColorID = "color-001"
	err := validateReferences(snap, order)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "color_id" {
		t.Fatalf("expected color_id error, got %v", err)
	}
}

func TestMergeCustomers(t *testing.T) {
	st := NewStore(nil, zap.NewNop())
	st.publish(&Snapshot{Customers: []analytics.Customer{
		{Name: "Acme Co", TotalOrders: 3},
	}})

	st.MergeCustomers([]analytics.Customer{
		{Name: "Acme Co", Company: "import should lose"},
		{Name: "Zen Prints"},
		{Name: "Brightwear"},
	})

	customers := st.Snapshot().Customers
	if len(customers) != 3 {
		t.Fatalf("customers = %d, want 3", len(customers))
	}
	// existing rollup entry wins over the import
	if customers[0].Name != "Acme Co" || customers[0].TotalOrders != 3 {
		t.Fatalf("rollup entry replaced: %+v", customers[0])
	}
	if customers[1].Name != "Brightwear" || customers[2].Name != "Zen Prints" {
		t.Fatalf("not alphabetical: %q, %q", customers[1].Name, customers[2].Name)
	}
}

func TestFindCoordinator(t *testing.T) {
	st := NewStore(nil, zap.NewNop())
	st.publish(refSnapshot())

	coord, err := st.FindCoordinator("coord-001")
	if err != nil || coord.Name != "Rahul" {
		t.Fatalf("FindCoordinator = %+v, %v", coord, err)
	}

	if _, err := st.FindCoordinator("coord-404"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
