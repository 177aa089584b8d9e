package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stitchpoint/orderdesk/internal/model/entity"
	"github.com/stitchpoint/orderdesk/internal/repository"
	"github.com/stitchpoint/orderdesk/internal/store"
)

// OrderService handles order intake and lifecycle edits.
type OrderService struct {
	store     *store.Store
	dashboard *DashboardService
	notifier  *NotificationService
	logger    *zap.Logger
}

// NewOrderService creates an order service.
func NewOrderService(st *store.Store, dashboard *DashboardService, notifier *NotificationService, logger *zap.Logger) *OrderService {
	return &OrderService{store: st, dashboard: dashboard, notifier: notifier, logger: logger}
}

// OrderRequest is the create/update payload. Totals are never taken from the
// caller: quantity and amount are rederived from the size breakdown here.
type OrderRequest struct {
	CustomerName       string               `json:"customer_name" binding:"required"`
	OrderDate          string               `json:"order_date" binding:"required"`
	DeliveryDate       string               `json:"delivery_date" binding:"required"`
	EDD                string               `json:"edd"`
	ProductCategoryID  string               `json:"product_category_id" binding:"required"`
	ProductNameID      string               `json:"product_name_id" binding:"required"`
	ColorID            string               `json:"color_id" binding:"required"`
	SalesCoordinatorID string               `json:"sales_coordinator_id" binding:"required"`
	Sizes              entity.SizeBreakdown `json:"size_breakdown"`
	CostPerPc          float64              `json:"cost_per_pc"`
	OrderType          string               `json:"order_type" binding:"required"`
	Priority           string               `json:"priority" binding:"required"`
	BrandingMethod     string               `json:"branding_method" binding:"required"`
	Status             string               `json:"order_status"`
	Placement1         string               `json:"placement1"`
	Placement1Size     string               `json:"placement1_size"`
	Placement2         string               `json:"placement2"`
	Placement2Size     string               `json:"placement2_size"`
	Placement3         string               `json:"placement3"`
	Placement3Size     string               `json:"placement3_size"`
	Placement4         string               `json:"placement4"`
	Placement4Size     string               `json:"placement4_size"`
	MockupFiles        []string             `json:"mockup_files"`
	Attachments        []string             `json:"attachments"`
	Description        string               `json:"description" binding:"required"`
	Remarks            string               `json:"remarks"`
}

const dateLayout = "2006-01-02"

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, &store.ValidationError{Field: field, Message: "expected date in YYYY-MM-DD format"}
	}
	return t, nil
}

// validate checks field values; reference ids are the store's concern.
func (r *OrderRequest) validate() error {
	if !entity.IsValidOrderType(r.OrderType) {
		return &store.ValidationError{Field: "order_type", Message: "unknown order type"}
	}
	if !entity.IsValidPriority(r.Priority) {
		return &store.ValidationError{Field: "priority", Message: "unknown priority"}
	}
	if !entity.IsValidBrandingMethod(r.BrandingMethod) {
		return &store.ValidationError{Field: "branding_method", Message: "unknown branding method"}
	}
	if r.Status != "" && !entity.IsValidStatus(r.Status) {
		return &store.ValidationError{Field: "order_status", Message: "unknown order status"}
	}
	if r.Sizes.HasNegative() {
		return &store.ValidationError{Field: "size_breakdown", Message: "size quantities cannot be negative"}
	}
	if r.Sizes.Total() == 0 {
		return &store.ValidationError{Field: "size_breakdown", Message: "at least one size quantity is required"}
	}
	if r.CostPerPc < 0 {
		return &store.ValidationError{Field: "cost_per_pc", Message: "cost per piece cannot be negative"}
	}
	return nil
}

// toEntity builds the order row. Derived totals are recomputed and
// placements are dropped when there is no branding.
func (r *OrderRequest) toEntity(order *entity.Order) error {
	orderDate, err := parseDate("order_date", r.OrderDate)
	if err != nil {
		return err
	}
	deliveryDate, err := parseDate("delivery_date", r.DeliveryDate)
	if err != nil {
		return err
	}
	var edd *time.Time
	if r.EDD != "" {
		d, err := parseDate("edd", r.EDD)
		if err != nil {
			return err
		}
		edd = &d
	}

	order.CustomerName = r.CustomerName
	order.OrderDate = orderDate
	order.DeliveryDate = deliveryDate
	order.EDD = edd
	order.ProductCategoryID = r.ProductCategoryID
	order.ProductNameID = r.ProductNameID
	order.ColorID = r.ColorID
	order.SalesCoordinatorID = r.SalesCoordinatorID
	order.Sizes = r.Sizes
	order.TotalQty = r.Sizes.Total()
	order.CostPerPc = r.CostPerPc
	order.TotalAmount = r.CostPerPc * float64(order.TotalQty)
	order.OrderType = r.OrderType
	order.Priority = r.Priority
	order.BrandingMethod = r.BrandingMethod
	order.MockupFiles = r.MockupFiles
	order.Attachments = r.Attachments
	order.Description = r.Description
	order.Remarks = r.Remarks

	if r.BrandingMethod == entity.BrandingNone {
		order.Placement1, order.Placement1Size = "", ""
		order.Placement2, order.Placement2Size = "", ""
		order.Placement3, order.Placement3Size = "", ""
		order.Placement4, order.Placement4Size = "", ""
	} else {
		order.Placement1, order.Placement1Size = r.Placement1, r.Placement1Size
		order.Placement2, order.Placement2Size = r.Placement2, r.Placement2Size
		order.Placement3, order.Placement3Size = r.Placement3, r.Placement3Size
		order.Placement4, order.Placement4Size = r.Placement4, r.Placement4Size
	}
	return nil
}

// List returns all orders from the current snapshot, optionally filtered by
// status. The snapshot is already newest-first.
func (s *OrderService) List(status string) []entity.Order {
	orders := s.store.Snapshot().Orders
	if status == "" {
		return orders
	}
	filtered := make([]entity.Order, 0, len(orders))
	for i := range orders {
		if orders[i].Status == status {
			filtered = append(filtered, orders[i])
		}
	}
	return filtered
}

// Get returns one order from the current snapshot.
func (s *OrderService) Get(id string) (*entity.Order, error) {
	orders := s.store.Snapshot().Orders
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

// Create validates, persists and announces a new order.
func (s *OrderService) Create(ctx context.Context, req *OrderRequest) (*entity.Order, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.Order{
		ID:        uuid.New().String()[:32],
		Status:    entity.StatusPendingApproval,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Status != "" {
		order.Status = req.Status
	}
	if err := req.toEntity(order); err != nil {
		return nil, err
	}

	created, err := s.store.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	s.dashboard.InvalidateCache(ctx)
	s.notifier.Broadcast(ctx, Notification{
		Type:    "success",
		Title:   "New Order Created",
		Message: fmt.Sprintf("Order %s has been created successfully.", created.OrderCode),
		Sound:   "notification",
	})
	return created, nil
}

// Update replaces the full order record and announces status changes.
func (s *OrderService) Update(ctx context.Context, id string, req *OrderRequest) (*entity.Order, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	newStatus := existing.Status
	if req.Status != "" {
		newStatus = req.Status
	}
	if newStatus != existing.Status && entity.IsTerminalStatus(existing.Status) {
		return nil, &store.ValidationError{
			Field:   "order_status",
			Message: fmt.Sprintf("order is already %s", entity.StatusLabels[existing.Status]),
		}
	}

	order := &entity.Order{
		ID:        existing.ID,
		OrderCode: existing.OrderCode,
		Status:    newStatus,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now(),
	}
	if err := req.toEntity(order); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	s.dashboard.InvalidateCache(ctx)
	if newStatus != existing.Status {
		s.notifier.Broadcast(ctx, statusChangeNotification(updated))
	}
	return updated, nil
}

// statusChangeNotification picks the toast for a status transition.
// Dispatched and cancelled get dedicated messages.
func statusChangeNotification(order *entity.Order) Notification {
	switch order.Status {
	case entity.StatusDispatched:
		return Notification{
			Type:    "success",
			Title:   "Order Dispatched!",
			Message: fmt.Sprintf("Order %s has been dispatched successfully.", order.OrderCode),
			Sound:   "clap",
		}
	case entity.StatusCancelled:
		return Notification{
			Type:    "error",
			Title:   "Order Cancelled",
			Message: fmt.Sprintf("Order %s has been cancelled.", order.OrderCode),
			Sound:   "error",
		}
	default:
		return Notification{
			Type:    "info",
			Title:   "Order Status Updated",
			Message: fmt.Sprintf("Order %s status changed to %s", order.OrderCode, entity.StatusLabels[order.Status]),
			Sound:   "notification",
		}
	}
}

// AppendFiles attaches uploaded file URLs to an order and persists through
// the standard update path.
func (s *OrderService) AppendFiles(ctx context.Context, id, kind string, urls []string) (*entity.Order, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	order := *existing
	order.ProductCategory, order.ProductName, order.Color, order.SalesCoordinator = nil, nil, nil, nil
	switch kind {
	case "mockups":
		order.MockupFiles = append(append(entity.StringList{}, existing.MockupFiles...), urls...)
	case "attachments":
		order.Attachments = append(append(entity.StringList{}, existing.Attachments...), urls...)
	default:
		return nil, &store.ValidationError{Field: "kind", Message: "kind must be mockups or attachments"}
	}
	order.UpdatedAt = time.Now()

	return s.store.UpdateOrder(ctx, &order)
}

// RemoveFile detaches one file URL from an order. Removing a URL the order
// does not carry is a no-op.
func (s *OrderService) RemoveFile(ctx context.Context, id, kind, url string) (*entity.Order, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	drop := func(list entity.StringList) entity.StringList {
		kept := make(entity.StringList, 0, len(list))
		for _, u := range list {
			if u != url {
				kept = append(kept, u)
			}
		}
		return kept
	}

	order := *existing
	order.ProductCategory, order.ProductName, order.Color, order.SalesCoordinator = nil, nil, nil, nil
	switch kind {
	case "mockups":
		order.MockupFiles = drop(existing.MockupFiles)
	case "attachments":
		order.Attachments = drop(existing.Attachments)
	default:
		return nil, &store.ValidationError{Field: "kind", Message: "kind must be mockups or attachments"}
	}
	order.UpdatedAt = time.Now()

	return s.store.UpdateOrder(ctx, &order)
}
