package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/stitchpoint/orderdesk/internal/store"
)

// CatalogHandler serves the reference data the order form needs.
type CatalogHandler struct {
	store *store.Store
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(st *store.Store) *CatalogHandler {
	return &CatalogHandler{store: st}
}

// Get GET /catalog
func (h *CatalogHandler) Get(c *gin.Context) {
	snap := h.store.Snapshot()
	Success(c, gin.H{
		"product_categories": snap.Categories,
		"product_names":      snap.ProductNames,
		"colors":             snap.Colors,
	})
}
