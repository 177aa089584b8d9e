package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/stitchpoint/orderdesk/internal/analytics"
	"github.com/stitchpoint/orderdesk/internal/store"
)

const (
	dashboardStatsCacheKey = "orderdesk:dashboard:stats"
	dashboardStatsCacheTTL = 60 * time.Second

	recentActivityLimit = 10
	monthlyWindowMonths = 6
	topCustomersLimit   = 5
)

// DashboardService computes dashboard aggregates from the in-memory
// snapshot. The headline stats are cached in redis; everything else is
// cheap enough to compute per request.
type DashboardService struct {
	store  *store.Store
	rdb    *redis.Client
	logger *zap.Logger
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(st *store.Store, rdb *redis.Client, logger *zap.Logger) *DashboardService {
	return &DashboardService{store: st, rdb: rdb, logger: logger}
}

// Stats returns the headline dashboard counters, served from redis when a
// fresh copy exists.
func (s *DashboardService) Stats(ctx context.Context) analytics.DashboardStats {
	if cached, err := s.rdb.Get(ctx, dashboardStatsCacheKey).Result(); err == nil {
		var stats analytics.DashboardStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return stats
		}
		// fall through and recompute on a bad cache entry
	}

	snap := s.store.Snapshot()
	stats := analytics.ComputeDashboardStats(snap.Orders, time.Now())

	if payload, err := json.Marshal(stats); err == nil {
		if err := s.rdb.Set(ctx, dashboardStatsCacheKey, payload, dashboardStatsCacheTTL).Err(); err != nil {
			s.logger.Warn("cache dashboard stats", zap.Error(err))
		}
	}
	return stats
}

// InvalidateCache drops the cached stats so the next read recomputes.
// Called after every order mutation.
func (s *DashboardService) InvalidateCache(ctx context.Context) {
	if err := s.rdb.Del(ctx, dashboardStatsCacheKey).Err(); err != nil {
		s.logger.Warn("invalidate dashboard cache", zap.Error(err))
	}
}

// RecentActivity returns the latest order events, newest first.
func (s *DashboardService) RecentActivity() []analytics.ActivityEntry {
	snap := s.store.Snapshot()
	return analytics.RecentActivity(snap.Orders, recentActivityLimit, time.Now())
}

// PriorityDistribution returns the open-order priority split.
func (s *DashboardService) PriorityDistribution() []analytics.PriorityBucket {
	snap := s.store.Snapshot()
	return analytics.PriorityDistribution(snap.Orders)
}

// MonthlyTimeSeries returns order and revenue counts for the trailing
// months that have orders.
func (s *DashboardService) MonthlyTimeSeries() []analytics.MonthlyBucket {
	snap := s.store.Snapshot()
	return analytics.MonthlyTimeSeries(snap.Orders, monthlyWindowMonths)
}

// OrderTypeDistribution returns the order-type split with chart colors.
func (s *DashboardService) OrderTypeDistribution() []analytics.TypeBucket {
	snap := s.store.Snapshot()
	return analytics.OrderTypeDistribution(snap.Orders)
}

// TopCustomers returns the customers with the most orders.
func (s *DashboardService) TopCustomers() []analytics.EntityRollup {
	snap := s.store.Snapshot()
	return analytics.TopEntities(snap.Orders, analytics.CustomerNameKey, topCustomersLimit)
}
