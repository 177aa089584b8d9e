// Package store owns the in-memory snapshot of the full dataset. Reads are
// served from the current snapshot; order mutations persist and then reload
// everything, coordinator mutations merge locally without a reload.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/stitchpoint/orderdesk/internal/analytics"
	"github.com/stitchpoint/orderdesk/internal/model/entity"
	"github.com/stitchpoint/orderdesk/internal/repository"
	"go.uber.org/zap"
)

// ErrDataLoad marks a failed snapshot load. There is no partial-success
// mode: the previous snapshot stays in place and the caller sees the error.
var ErrDataLoad = errors.New("data load failed")

// ValidationError is a recoverable mutation error: an unknown reference or a
// bad field value. The caller can correct the input and retry.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Snapshot is one immutable view of the dataset. Never mutate a snapshot
// after publishing it; mutations build a replacement.
type Snapshot struct {
	Orders       []entity.Order
	Coordinators []entity.SalesCoordinator
	Categories   []entity.ProductCategory
	ProductNames []entity.ProductName
	Colors       []entity.Color
	Customers    []analytics.Customer
	LoadedAt     time.Time
}

// Store is the single writer over the snapshot.
type Store struct {
	repos  *repository.Repositories
	logger *zap.Logger

	// writeMu serializes mutations so order-code generation reads a
	// snapshot no concurrent create can invalidate in-process. The unique
	// index on order_code covers other instances.
	writeMu sync.Mutex

	mu   sync.RWMutex
	snap *Snapshot
}

// NewStore creates a store. Call LoadAll before serving reads.
func NewStore(repos *repository.Repositories, logger *zap.Logger) *Store {
	return &Store{
		repos:  repos,
		logger: logger,
		snap:   &Snapshot{},
	}
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// LoadAll fetches all five tables in one pass, derives the customer rollup
// and swaps the snapshot. Any fetch failure aborts the whole load.
func (s *Store) LoadAll(ctx context.Context) error {
	coordinators, err := s.repos.Coordinator.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: list coordinators: %v", ErrDataLoad, err)
	}
	categories, err := s.repos.Catalog.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("%w: list categories: %v", ErrDataLoad, err)
	}
	products, err := s.repos.Catalog.ListProductNames(ctx)
	if err != nil {
		return fmt.Errorf("%w: list product names: %v", ErrDataLoad, err)
	}
	colors, err := s.repos.Catalog.ListColors(ctx)
	if err != nil {
		return fmt.Errorf("%w: list colors: %v", ErrDataLoad, err)
	}
	orders, err := s.repos.Order.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: list orders: %v", ErrDataLoad, err)
	}

	snap := &Snapshot{
		Orders:       orders,
		Coordinators: coordinators,
		Categories:   categories,
		ProductNames: products,
		Colors:       colors,
		Customers:    analytics.CustomerRollup(orders),
		LoadedAt:     time.Now(),
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.logger.Info("snapshot loaded",
		zap.Int("orders", len(orders)),
		zap.Int("coordinators", len(coordinators)),
		zap.Int("customers", len(snap.Customers)),
	)
	return nil
}

// validateReferences checks every foreign id of the order against the
// current snapshot.
func validateReferences(snap *Snapshot, order *entity.Order) error {
	var category *entity.ProductCategory
	for i := range snap.Categories {
		if snap.Categories[i].ID == order.ProductCategoryID {
			category = &snap.Categories[i]
			break
		}
	}
	if category == nil {
		return &ValidationError{Field: "product_category_id", Message: "unknown product category"}
	}

	var product *entity.ProductName
	for i := range snap.ProductNames {
		if snap.ProductNames[i].ID == order.ProductNameID {
			product = &snap.ProductNames[i]
			break
		}
	}
	if product == nil {
		return &ValidationError{Field: "product_name_id", Message: "unknown product name"}
	}
	if product.CategoryID != category.ID {
		return &ValidationError{Field: "product_name_id", Message: "product does not belong to the selected category"}
	}

	colorKnown := false
	for i := range snap.Colors {
		if snap.Colors[i].ID == order.ColorID {
			colorKnown = true
			break
		}
	}
	if !colorKnown {
		return &ValidationError{Field: "color_id", Message: "unknown color"}
	}
	if !product.AllowsColor(order.ColorID) {
		return &ValidationError{Field: "color_id", Message: "color not available for the selected product"}
	}

	for i := range snap.Coordinators {
		if snap.Coordinators[i].ID == order.SalesCoordinatorID {
			return nil
		}
	}
	return &ValidationError{Field: "sales_coordinator_id", Message: "unknown sales coordinator"}
}

// CreateOrder validates references, assigns the next order code, persists
// and reloads. A code collision with another instance triggers exactly one
// reload-and-regenerate retry.
func (s *Store) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	snap := s.Snapshot()
	if err := validateReferences(snap, order); err != nil {
		return nil, err
	}

	year := time.Now().Year()
	for attempt := 0; ; attempt++ {
		order.OrderCode = entity.NextOrderCode(snap.Orders, year)
		err := s.repos.Order.Create(ctx, order)
		if err == nil {
			break
		}
		if repository.IsDuplicateCode(err) && attempt == 0 {
			s.logger.Warn("order code collision, regenerating", zap.String("order_code", order.OrderCode))
			if lerr := s.LoadAll(ctx); lerr != nil {
				return nil, lerr
			}
			snap = s.Snapshot()
			continue
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.LoadAll(ctx); err != nil {
		return nil, err
	}
	return s.repos.Order.FindByID(ctx, order.ID)
}

// UpdateOrder validates references, replaces the full record and reloads.
func (s *Store) UpdateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := validateReferences(s.Snapshot(), order); err != nil {
		return nil, err
	}
	if err := s.repos.Order.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	if err := s.LoadAll(ctx); err != nil {
		return nil, err
	}
	return s.repos.Order.FindByID(ctx, order.ID)
}

// FindCoordinator returns a copy of the coordinator from the snapshot.
func (s *Store) FindCoordinator(id string) (*entity.SalesCoordinator, error) {
	for _, c := range s.Snapshot().Coordinators {
		if c.ID == id {
			coord := c
			return &coord, nil
		}
	}
	return nil, repository.ErrNotFound
}

// CreateCoordinator persists and appends to the snapshot locally. Coordinator
// mutations deliberately skip the full reload that order mutations pay.
func (s *Store) CreateCoordinator(ctx context.Context, coord *entity.SalesCoordinator) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.repos.Coordinator.Create(ctx, coord); err != nil {
		return fmt.Errorf("create coordinator: %w", err)
	}

	snap := s.Snapshot()
	next := *snap
	next.Coordinators = append(append([]entity.SalesCoordinator{}, snap.Coordinators...), *coord)
	sort.Slice(next.Coordinators, func(a, b int) bool {
		return next.Coordinators[a].Name < next.Coordinators[b].Name
	})
	s.publish(&next)
	return nil
}

// UpdateCoordinator persists and merges the changed record in place.
func (s *Store) UpdateCoordinator(ctx context.Context, coord *entity.SalesCoordinator) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.repos.Coordinator.Update(ctx, coord); err != nil {
		return fmt.Errorf("update coordinator: %w", err)
	}

	snap := s.Snapshot()
	next := *snap
	next.Coordinators = append([]entity.SalesCoordinator{}, snap.Coordinators...)
	for i := range next.Coordinators {
		if next.Coordinators[i].ID == coord.ID {
			next.Coordinators[i] = *coord
			break
		}
	}
	s.publish(&next)
	return nil
}

// MergeCustomers folds imported directory entries into the snapshot. Rollup
// entries derived from orders win over imports of the same name; the merge
// lives only until the next full reload.
func (s *Store) MergeCustomers(customers []analytics.Customer) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	snap := s.Snapshot()
	existing := make(map[string]bool, len(snap.Customers))
	for _, c := range snap.Customers {
		existing[c.Name] = true
	}

	next := *snap
	next.Customers = append([]analytics.Customer{}, snap.Customers...)
	for _, c := range customers {
		if existing[c.Name] {
			continue
		}
		existing[c.Name] = true
		next.Customers = append(next.Customers, c)
	}
	sort.Slice(next.Customers, func(a, b int) bool {
		return next.Customers[a].Name < next.Customers[b].Name
	})
	s.publish(&next)
}

func (s *Store) publish(snap *Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}
