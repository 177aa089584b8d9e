package repository

import (
	"context"
	"errors"

	"github.com/stitchpoint/orderdesk/internal/model/entity"
	"gorm.io/gorm"
)

// CoordinatorRepository persists sales coordinators.
type CoordinatorRepository struct {
	db *gorm.DB
}

// NewCoordinatorRepository creates a coordinator repository.
func NewCoordinatorRepository(db *gorm.DB) *CoordinatorRepository {
	return &CoordinatorRepository{db: db}
}

// FindByID loads one coordinator.
func (r *CoordinatorRepository) FindByID(ctx context.Context, id string) (*entity.SalesCoordinator, error) {
	var coord entity.SalesCoordinator
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&coord).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &coord, nil
}

// ListAll loads every coordinator sorted by name.
func (r *CoordinatorRepository) ListAll(ctx context.Context) ([]entity.SalesCoordinator, error) {
	var coordinators []entity.SalesCoordinator
	err := r.db.WithContext(ctx).Order("name ASC").Find(&coordinators).Error
	return coordinators, err
}

// Create inserts a coordinator.
func (r *CoordinatorRepository) Create(ctx context.Context, coord *entity.SalesCoordinator) error {
	return r.db.WithContext(ctx).Create(coord).Error
}

// Update replaces the full coordinator record.
func (r *CoordinatorRepository) Update(ctx context.Context, coord *entity.SalesCoordinator) error {
	return r.db.WithContext(ctx).Save(coord).Error
}
