package repository

import (
	"context"

	"github.com/stitchpoint/orderdesk/internal/model/entity"
	"gorm.io/gorm"
)

// CatalogRepository persists the product taxonomy: categories, product names
// and colors. These tables are read-mostly seed data.
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a catalog repository.
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListCategories loads every product category sorted by name.
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]entity.ProductCategory, error) {
	var categories []entity.ProductCategory
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

// ListProductNames loads every product name sorted by name.
func (r *CatalogRepository) ListProductNames(ctx context.Context) ([]entity.ProductName, error) {
	var products []entity.ProductName
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

// ListColors loads every color sorted by name.
func (r *CatalogRepository) ListColors(ctx context.Context) ([]entity.Color, error) {
	var colors []entity.Color
	err := r.db.WithContext(ctx).Order("name ASC").Find(&colors).Error
	return colors, err
}
