package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stitchpoint/orderdesk/internal/service"
)

// CoordinatorHandler serves the sales-coordinator surface.
type CoordinatorHandler struct {
	svc *service.CoordinatorService
}

// NewCoordinatorHandler creates a coordinator handler.
func NewCoordinatorHandler(svc *service.CoordinatorService) *CoordinatorHandler {
	return &CoordinatorHandler{svc: svc}
}

// List GET /coordinators
func (h *CoordinatorHandler) List(c *gin.Context) {
	coordinators := h.svc.List()
	Success(c, gin.H{"items": coordinators, "total": len(coordinators)})
}

// Create POST /coordinators
func (h *CoordinatorHandler) Create(c *gin.Context) {
	var req service.CoordinatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	coordinator, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, coordinator)
}

// Update PUT /coordinators/:id
func (h *CoordinatorHandler) Update(c *gin.Context) {
	var req service.CoordinatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	coordinator, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, coordinator)
}

// Performance GET /coordinators/performance?days=30
func (h *CoordinatorHandler) Performance(c *gin.Context) {
	days := 30
	if d := c.Query("days"); d != "" {
		if v, err := strconv.Atoi(d); err == nil && v > 0 {
			days = v
		}
	}
	Success(c, h.svc.SalesPerformance(days))
}
