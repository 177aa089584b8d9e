package repository

import (
	"context"
	"errors"

	"github.com/stitchpoint/orderdesk/internal/model/entity"
	"gorm.io/gorm"
)

// OrderRepository persists orders.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// FindByID loads one order with all referenced entities.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("ProductCategory").
		Preload("ProductName").
		Preload("Color").
		Preload("SalesCoordinator").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListAll loads every order with referenced entities, newest first.
func (r *OrderRepository) ListAll(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Preload("ProductCategory").
		Preload("ProductName").
		Preload("Color").
		Preload("SalesCoordinator").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// Create inserts an order. The unique index on order_code surfaces code
// collisions as gorm.ErrDuplicatedKey.
func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Update replaces the full order record.
func (r *OrderRepository) Update(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// IsDuplicateCode reports whether err is the order-code unique violation.
func IsDuplicateCode(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
