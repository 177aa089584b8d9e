package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Repositories bundles every repository behind a single constructor.
type Repositories struct {
	Order       *OrderRepository
	Coordinator *CoordinatorRepository
	Catalog     *CatalogRepository
}

// NewRepositories creates all repositories sharing one database handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Order:       NewOrderRepository(db),
		Coordinator: NewCoordinatorRepository(db),
		Catalog:     NewCatalogRepository(db),
	}
}
