package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/stitchpoint/orderdesk/internal/service"
)

// DashboardHandler serves the dashboard widgets.
type DashboardHandler struct {
	svc *service.DashboardService
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats GET /dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	Success(c, h.svc.Stats(c.Request.Context()))
}

// RecentActivity GET /dashboard/recent-activity
func (h *DashboardHandler) RecentActivity(c *gin.Context) {
	Success(c, h.svc.RecentActivity())
}

// PriorityDistribution GET /dashboard/priority-distribution
func (h *DashboardHandler) PriorityDistribution(c *gin.Context) {
	Success(c, h.svc.PriorityDistribution())
}

// MonthlyTimeSeries GET /dashboard/monthly
func (h *DashboardHandler) MonthlyTimeSeries(c *gin.Context) {
	Success(c, h.svc.MonthlyTimeSeries())
}

// OrderTypeDistribution GET /dashboard/order-types
func (h *DashboardHandler) OrderTypeDistribution(c *gin.Context) {
	Success(c, h.svc.OrderTypeDistribution())
}

// TopCustomers GET /dashboard/top-customers
func (h *DashboardHandler) TopCustomers(c *gin.Context) {
	Success(c, h.svc.TopCustomers())
}
