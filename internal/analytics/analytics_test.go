package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stitchpoint/orderdesk/internal/model/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func order(code, customer, status string, amount float64, orderDate time.Time) entity.Order {
	return entity.Order{
		ID:           code,
		OrderCode:    code,
		CustomerName: customer,
		Status:       status,
		Priority:     entity.PriorityMedium,
		OrderType:    entity.OrderTypeNew,
		TotalAmount:  amount,
		OrderDate:    orderDate,
		DeliveryDate: orderDate.AddDate(0, 0, 7),
	}
}

func TestComputeDashboardStatsEmpty(t *testing.T) {
	stats := ComputeDashboardStats(nil, time.Now())
	if stats.TotalOrders != 0 || stats.Revenue != 0 || stats.AverageOrderValue != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestComputeDashboardStats(t *testing.T) {
	now := date(2025, time.June, 15)
	orders := []entity.Order{
		order("SP/2025/0001", "Acme", entity.StatusPendingApproval, 100, date(2025, time.June, 1)),
		order("SP/2025/0002", "Acme", entity.StatusStickerPrinting, 200, date(2025, time.June, 2)),
		order("SP/2025/0003", "Beta", entity.StatusUnderFusing, 300, date(2025, time.June, 3)),
		order("SP/2025/0004", "Beta", entity.StatusSampleApproval, 400, date(2025, time.June, 4)),
		// Dispatched this month: counted in revenue and completed.
		order("SP/2025/0005", "Gamma", entity.StatusDispatched, 500, date(2025, time.June, 5)),
		// Dispatched in May: excluded from monthly figures, included in AOV.
		order("SP/2025/0006", "Gamma", entity.StatusDispatched, 700, date(2025, time.May, 5)),
	}

	stats := ComputeDashboardStats(orders, now)
	if stats.TotalOrders != 6 {
		t.Errorf("TotalOrders = %d, want 6", stats.TotalOrders)
	}
	if stats.PendingOrders != 1 {
		t.Errorf("PendingOrders = %d, want 1", stats.PendingOrders)
	}
	// Only sticker-printing and under-fusing count as in progress.
	if stats.InProgress != 2 {
		t.Errorf("InProgress = %d, want 2", stats.InProgress)
	}
	if stats.CompletedThisMonth != 1 {
		t.Errorf("CompletedThisMonth = %d, want 1", stats.CompletedThisMonth)
	}
	if stats.Revenue != 500 {
		t.Errorf("Revenue = %v, want 500", stats.Revenue)
	}
	if stats.AverageOrderValue != 600 {
		t.Errorf("AverageOrderValue = %v, want 600", stats.AverageOrderValue)
	}
}

func TestDashboardStatsNoDispatched(t *testing.T) {
	orders := []entity.Order{
		order("SP/2025/0001", "Acme", entity.StatusPendingApproval, 100, date(2025, time.June, 1)),
	}
	stats := ComputeDashboardStats(orders, date(2025, time.June, 15))
	if stats.AverageOrderValue != 0 {
		t.Fatalf("AverageOrderValue = %v, want 0 when nothing dispatched", stats.AverageOrderValue)
	}
}

func TestRecentActivity(t *testing.T) {
	now := date(2025, time.July, 1)
	coord := &entity.SalesCoordinator{ID: "c1", Name: "Priya"}

	orders := make([]entity.Order, 12)
	for i := range orders {
		orders[i] = order("SP/2025/0001", "Acme", entity.StatusDispatched, 100, now)
		orders[i].SalesCoordinator = coord
	}
	orders[0].Status = entity.StatusPendingApproval
	orders[0].UpdatedAt = date(2025, time.June, 30)

	entries := RecentActivity(orders, 10, now)
	if len(entries) != 10 {
		t.Fatalf("len(entries) = %d, want 10", len(entries))
	}
	if entries[0].Action != "Order SP/2025/0001 is pending approval" {
		t.Errorf("unexpected action %q", entries[0].Action)
	}
	if entries[0].User != "Priya" {
		t.Errorf("User = %q, want Priya", entries[0].User)
	}
	if !entries[0].Timestamp.Equal(date(2025, time.June, 30)) {
		t.Errorf("Timestamp = %v, want updated_at", entries[0].Timestamp)
	}
	// No timestamps at all falls back to now.
	if !entries[1].Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want now fallback", entries[1].Timestamp)
	}
}

func TestPriorityDistribution(t *testing.T) {
	orders := []entity.Order{
		order("1", "A", entity.StatusPendingApproval, 0, date(2025, time.June, 1)),
		order("2", "A", entity.StatusCancelled, 0, date(2025, time.June, 1)),
		order("3", "A", entity.StatusDispatched, 0, date(2025, time.June, 1)),
		order("4", "A", entity.StatusReadyToShip, 0, date(2025, time.June, 1)),
	}
	orders[0].Priority = entity.PriorityUrgent
	orders[1].Priority = entity.PriorityUrgent // cancelled still counts
	orders[2].Priority = entity.PriorityUrgent // dispatched excluded
	orders[3].Priority = entity.PriorityLow

	buckets := PriorityDistribution(orders)
	if len(buckets) != 4 {
		t.Fatalf("len(buckets) = %d, want 4 fixed buckets", len(buckets))
	}
	if buckets[0].Priority != entity.PriorityUrgent || buckets[0].Count != 2 {
		t.Errorf("urgent bucket = %+v, want count 2", buckets[0])
	}
	sum := 0.0
	for _, b := range buckets {
		if b.Percentage < 0 || b.Percentage > 100 {
			t.Errorf("percentage out of range: %+v", b)
		}
		sum += b.Percentage
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("percentages sum to %v, want 100", sum)
	}
}

func TestPriorityDistributionAllDispatched(t *testing.T) {
	orders := []entity.Order{
		order("1", "A", entity.StatusDispatched, 0, date(2025, time.June, 1)),
	}
	if buckets := PriorityDistribution(orders); buckets != nil {
		t.Fatalf("expected nil buckets, got %+v", buckets)
	}
}

func TestMonthlyTimeSeries(t *testing.T) {
	var orders []entity.Order
	// Eight distinct months; only the trailing six survive.
	for m := time.January; m <= time.August; m++ {
		o := order("x", "A", entity.StatusPendingApproval, 100, date(2025, m, 10))
		orders = append(orders, o)
	}
	// A dispatched order in August adds revenue; pending ones do not.
	dispatched := order("y", "A", entity.StatusDispatched, 250, date(2025, time.August, 20))
	orders = append(orders, dispatched)

	buckets := MonthlyTimeSeries(orders, 6)
	if len(buckets) != 6 {
		t.Fatalf("len(buckets) = %d, want 6", len(buckets))
	}
	if buckets[0].Month != "Mar 25" {
		t.Errorf("first bucket = %q, want Mar 25", buckets[0].Month)
	}
	last := buckets[5]
	if last.Month != "Aug 25" || last.Orders != 2 || last.Revenue != 250 {
		t.Errorf("last bucket = %+v, want Aug 25 / 2 orders / 250 revenue", last)
	}
	for _, b := range buckets[:5] {
		if b.Revenue != 0 {
			t.Errorf("bucket %q revenue = %v, want 0 without dispatched orders", b.Month, b.Revenue)
		}
	}
}

func TestMonthlyTimeSeriesSkipsEmptyMonths(t *testing.T) {
	orders := []entity.Order{
		order("1", "A", entity.StatusPendingApproval, 0, date(2025, time.January, 1)),
		order("2", "A", entity.StatusPendingApproval, 0, date(2025, time.April, 1)),
	}
	buckets := MonthlyTimeSeries(orders, 6)
	if len(buckets) != 2 {
		t.Fatalf("len(buckets) = %d, want 2 (no zero-filling)", len(buckets))
	}
}

func TestOrderTypeDistribution(t *testing.T) {
	orders := []entity.Order{
		order("1", "A", entity.StatusPendingApproval, 0, date(2025, time.June, 1)),
		order("2", "A", entity.StatusPendingApproval, 0, date(2025, time.June, 1)),
		order("3", "A", entity.StatusPendingApproval, 0, date(2025, time.June, 1)),
	}
	orders[1].OrderType = entity.OrderTypeRush
	orders[2].OrderType = entity.OrderTypeRush

	buckets := OrderTypeDistribution(orders)
	if len(buckets) != 2 {
		t.Fatalf("len(buckets) = %d, want 2", len(buckets))
	}
	if buckets[0].Name != "New" || buckets[0].Color != "#3B82F6" {
		t.Errorf("new bucket = %+v", buckets[0])
	}
	if buckets[1].Name != "Rush" || buckets[1].Value != 2 || buckets[1].Color != "#EF4444" {
		t.Errorf("rush bucket = %+v", buckets[1])
	}
}

func TestTopEntitiesTieBreak(t *testing.T) {
	orders := []entity.Order{
		order("1", "First Seen", entity.StatusDispatched, 100, date(2025, time.June, 1)),
		order("2", "Second Seen", entity.StatusDispatched, 100, date(2025, time.June, 2)),
		order("3", "Big Spender", entity.StatusDispatched, 900, date(2025, time.June, 3)),
	}

	top := TopEntities(orders, CustomerNameKey, 2)
	if len(top) != 2 {
		t.Fatalf("len(top) = %d, want 2", len(top))
	}
	if top[0].Key != "Big Spender" {
		t.Errorf("top[0] = %+v", top[0])
	}
	// Equal revenue keeps first-seen order.
	if top[1].Key != "First Seen" {
		t.Errorf("top[1] = %+v, want First Seen to win the tie", top[1])
	}
}

func TestTopEntitiesRevenueIsDispatchedOnly(t *testing.T) {
	orders := []entity.Order{
		order("1", "Acme", entity.StatusPendingApproval, 500, date(2025, time.June, 1)),
		order("2", "Acme", entity.StatusDispatched, 100, date(2025, time.June, 2)),
	}
	top := TopEntities(orders, CustomerNameKey, 0)
	if len(top) != 1 || top[0].Orders != 2 || top[0].Revenue != 100 {
		t.Fatalf("rollup = %+v, want 2 orders / 100 revenue", top)
	}
}

func TestCustomerRollup(t *testing.T) {
	orders := []entity.Order{
		order("1", "Acme Co", entity.StatusDispatched, 100, date(2025, time.June, 1)),
		order("2", "Acme Co ", entity.StatusPendingApproval, 200, date(2025, time.June, 5)),
		order("3", "Zen Prints", entity.StatusCancelled, 50, date(2025, time.May, 1)),
		order("4", "   ", entity.StatusDispatched, 999, date(2025, time.May, 1)),
	}

	customers := CustomerRollup(orders)
	if len(customers) != 2 {
		t.Fatalf("len(customers) = %d, want 2 (blank names skipped)", len(customers))
	}
	// Alphabetical, not by spend.
	if customers[0].Name != "Acme Co" || customers[1].Name != "Zen Prints" {
		t.Fatalf("order = %q, %q; want alphabetical", customers[0].Name, customers[1].Name)
	}

	acme := customers[0]
	if acme.TotalOrders != 2 {
		t.Errorf("TotalOrders = %d, want 2", acme.TotalOrders)
	}
	// Lifetime spend ignores status: 100 dispatched + 200 pending.
	if acme.TotalSpent != 300 {
		t.Errorf("TotalSpent = %v, want 300", acme.TotalSpent)
	}
	if !acme.LastOrderDate.Equal(date(2025, time.June, 5)) {
		t.Errorf("LastOrderDate = %v", acme.LastOrderDate)
	}
	if acme.Status != "active" {
		t.Errorf("Status = %q, want active", acme.Status)
	}
}
