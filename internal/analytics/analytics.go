// Package analytics derives every dashboard figure from the in-memory order
// collection. All functions are pure: same orders in, same numbers out.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/stitchpoint/orderdesk/internal/model/entity"
)

// DashboardStats are the headline cards of the dashboard.
type DashboardStats struct {
	TotalOrders        int     `json:"total_orders"`
	PendingOrders      int     `json:"pending_orders"`
	InProgress         int     `json:"in_progress"`
	CompletedThisMonth int     `json:"completed_this_month"`
	Revenue            float64 `json:"revenue"`
	AverageOrderValue  float64 `json:"average_order_value"`
}

// inProgressStatuses are the two shop-floor stages counted as "in progress".
var inProgressStatuses = map[string]bool{
	entity.StatusStickerPrinting: true,
	entity.StatusUnderFusing:     true,
}

// ComputeDashboardStats builds the headline stats. Revenue and the
// completed count only consider dispatched orders whose order date falls in
// now's calendar month; average order value spans all dispatched orders.
func ComputeDashboardStats(orders []entity.Order, now time.Time) DashboardStats {
	stats := DashboardStats{TotalOrders: len(orders)}

	dispatchedCount := 0
	dispatchedRevenue := 0.0
	for i := range orders {
		o := &orders[i]
		switch {
		case o.Status == entity.StatusPendingApproval:
			stats.PendingOrders++
		case inProgressStatuses[o.Status]:
			stats.InProgress++
		}
		if o.Status == entity.StatusDispatched {
			dispatchedCount++
			dispatchedRevenue += o.TotalAmount
			if o.OrderDate.Year() == now.Year() && o.OrderDate.Month() == now.Month() {
				stats.CompletedThisMonth++
				stats.Revenue += o.TotalAmount
			}
		}
	}

	if dispatchedCount > 0 {
		stats.AverageOrderValue = dispatchedRevenue / float64(dispatchedCount)
	}
	return stats
}

// ActivityEntry is one line of the recent-activity feed.
type ActivityEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	OrderCode string    `json:"order_code"`
	Status    string    `json:"status"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

// RecentActivity maps the first limit orders, in input order, into activity
// lines. Timestamp falls back from updated to created to now.
func RecentActivity(orders []entity.Order, limit int, now time.Time) []ActivityEntry {
	if limit > len(orders) {
		limit = len(orders)
	}
	entries := make([]ActivityEntry, 0, limit)
	for i := 0; i < limit; i++ {
		o := &orders[i]
		ts := o.UpdatedAt
		if ts.IsZero() {
			ts = o.CreatedAt
		}
		if ts.IsZero() {
			ts = now
		}
		user := ""
		if o.SalesCoordinator != nil {
			user = o.SalesCoordinator.Name
		}
		entries = append(entries, ActivityEntry{
			ID:        o.ID,
			Action:    fmt.Sprintf("Order %s %s", o.OrderCode, entity.StatusAction(o.Status)),
			OrderCode: o.OrderCode,
			Status:    o.Status,
			User:      user,
			Timestamp: ts,
		})
	}
	return entries
}

// PriorityBucket is one slice of the priority-distribution widget.
type PriorityBucket struct {
	Priority   string  `json:"priority"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// PriorityDistribution buckets every non-dispatched order by priority.
// Cancelled orders still count. Returns nil when nothing remains, otherwise
// always the four fixed buckets in descending urgency.
func PriorityDistribution(orders []entity.Order) []PriorityBucket {
	counts := make(map[string]int)
	total := 0
	for i := range orders {
		if orders[i].Status == entity.StatusDispatched {
			continue
		}
		counts[orders[i].Priority]++
		total++
	}
	if total == 0 {
		return nil
	}

	buckets := make([]PriorityBucket, 0, len(entity.Priorities))
	for _, p := range entity.Priorities {
		buckets = append(buckets, PriorityBucket{
			Priority:   p,
			Count:      counts[p],
			Percentage: float64(counts[p]) / float64(total) * 100,
		})
	}
	return buckets
}

// MonthlyBucket is one month of the orders/revenue chart.
type MonthlyBucket struct {
	Month   string  `json:"month"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// MonthlyTimeSeries groups orders by order-date month, ascending, and keeps
// the trailing windowMonths buckets. Months without orders do not appear;
// revenue counts dispatched orders only.
func MonthlyTimeSeries(orders []entity.Order, windowMonths int) []MonthlyBucket {
	type monthStat struct {
		orders  int
		revenue float64
	}
	stats := make(map[string]*monthStat)
	for i := range orders {
		o := &orders[i]
		key := o.OrderDate.Format("2006-01")
		s, ok := stats[key]
		if !ok {
			s = &monthStat{}
			stats[key] = s
		}
		s.orders++
		if o.Status == entity.StatusDispatched {
			s.revenue += o.TotalAmount
		}
	}

	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > windowMonths {
		keys = keys[len(keys)-windowMonths:]
	}

	buckets := make([]MonthlyBucket, 0, len(keys))
	for _, k := range keys {
		t, _ := time.Parse("2006-01", k)
		buckets = append(buckets, MonthlyBucket{
			Month:   t.Format("Jan 06"),
			Orders:  stats[k].orders,
			Revenue: stats[k].revenue,
		})
	}
	return buckets
}

// TypeBucket is one slice of the order-type pie chart.
type TypeBucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// OrderTypeDistribution counts orders per type. Types without orders are
// omitted; slice order follows the canonical type ordering.
func OrderTypeDistribution(orders []entity.Order) []TypeBucket {
	counts := make(map[string]int)
	for i := range orders {
		counts[orders[i].OrderType]++
	}

	buckets := make([]TypeBucket, 0, 4)
	for _, t := range []string{entity.OrderTypeNew, entity.OrderTypeRepeat, entity.OrderTypeSample, entity.OrderTypeRush} {
		if counts[t] == 0 {
			continue
		}
		buckets = append(buckets, TypeBucket{
			Name:  entity.OrderTypeLabels[t],
			Value: counts[t],
			Color: entity.OrderTypeColors[t],
		})
	}
	return buckets
}

// EntityRollup is a per-key order count plus realized revenue.
type EntityRollup struct {
	Key     string  `json:"key"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// TopEntities groups orders by a caller-supplied key, counting orders and
// summing dispatched revenue per group. Groups are sorted by revenue
// descending with first-seen order breaking ties, truncated to limit.
// A limit <= 0 means unlimited. Orders whose key is empty are skipped.
func TopEntities(orders []entity.Order, keyFn func(*entity.Order) string, limit int) []EntityRollup {
	index := make(map[string]int)
	var rollups []EntityRollup
	for i := range orders {
		key := keyFn(&orders[i])
		if key == "" {
			continue
		}
		pos, ok := index[key]
		if !ok {
			pos = len(rollups)
			index[key] = pos
			rollups = append(rollups, EntityRollup{Key: key})
		}
		rollups[pos].Orders++
		if orders[i].Status == entity.StatusDispatched {
			rollups[pos].Revenue += orders[i].TotalAmount
		}
	}

	sort.SliceStable(rollups, func(a, b int) bool {
		return rollups[a].Revenue > rollups[b].Revenue
	})
	if limit > 0 && len(rollups) > limit {
		rollups = rollups[:limit]
	}
	return rollups
}

// CustomerNameKey keys a rollup by trimmed customer name.
func CustomerNameKey(o *entity.Order) string {
	return strings.TrimSpace(o.CustomerName)
}

// CoordinatorIDKey keys a rollup by sales-coordinator id.
func CoordinatorIDKey(o *entity.Order) string {
	return o.SalesCoordinatorID
}

// Customer is the derived directory entry for one customer name.
type Customer struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Company       string    `json:"company"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	ZipCode       string    `json:"zip_code"`
	TotalOrders   int       `json:"total_orders"`
	TotalSpent    float64   `json:"total_spent"`
	LastOrderDate time.Time `json:"last_order_date"`
	Status        string    `json:"status"`
}

// CustomerRollup rebuilds the customer directory from scratch. Grouping is by
// trimmed, case-sensitive customer name; blank names are skipped. TotalSpent
// sums every order regardless of status: this is lifetime value, not the
// realized revenue the dashboard reports. Result is alphabetical by name.
func CustomerRollup(orders []entity.Order) []Customer {
	byName := make(map[string]*Customer)
	for i := range orders {
		o := &orders[i]
		name := strings.TrimSpace(o.CustomerName)
		if name == "" {
			continue
		}
		c, ok := byName[name]
		if !ok {
			c = &Customer{
				ID:            name,
				Name:          name,
				LastOrderDate: o.OrderDate,
				Status:        "active",
			}
			byName[name] = c
		}
		c.TotalOrders++
		c.TotalSpent += o.TotalAmount
		if o.OrderDate.After(c.LastOrderDate) {
			c.LastOrderDate = o.OrderDate
		}
	}

	customers := make([]Customer, 0, len(byName))
	for _, c := range byName {
		customers = append(customers, *c)
	}
	sort.Slice(customers, func(a, b int) bool {
		return customers[a].Name < customers[b].Name
	})
	return customers
}
