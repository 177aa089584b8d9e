package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/stitchpoint/orderdesk/internal/model/entity"
)

// Report is the full date-ranged business report.
type Report struct {
	DateRange            string           `json:"date_range"`
	Summary              ReportSummary    `json:"summary"`
	SalesByCoordinator   []CoordinatorRow `json:"sales_by_coordinator"`
	StatusDistribution   []StatusCount    `json:"status_distribution"`
	PriorityDistribution []PriorityCount  `json:"priority_distribution"`
	TopCustomers         []EntityRollup   `json:"top_customers"`
	Insights             ReportInsights   `json:"insights"`
}

// ReportSummary are the headline figures of a report.
type ReportSummary struct {
	TotalOrders       int     `json:"total_orders"`
	CompletedOrders   int     `json:"completed_orders"`
	PendingOrders     int     `json:"pending_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// CoordinatorRow is one coordinator's performance line.
type CoordinatorRow struct {
	Name            string  `json:"name"`
	Orders          int     `json:"orders"`
	Revenue         float64 `json:"revenue"`
	CompletedOrders int     `json:"completed_orders"`
}

// StatusCount is one status line of the report distribution.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// PriorityCount is one priority line of the report distribution. Unlike the
// dashboard widget this one spans all orders in range, dispatched included.
type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int    `json:"count"`
}

// ReportInsights are the derived business-insight figures.
type ReportInsights struct {
	MostPopularProduct    string `json:"most_popular_product"`
	AverageProcessingDays int    `json:"average_processing_days"`
	CustomerRetentionPct  int    `json:"customer_retention_pct"`
}

// FilterByDateRange keeps orders whose order date lies in [from, to].
func FilterByDateRange(orders []entity.Order, from, to time.Time) []entity.Order {
	filtered := make([]entity.Order, 0, len(orders))
	for i := range orders {
		d := orders[i].OrderDate
		if !d.Before(from) && !d.After(to) {
			filtered = append(filtered, orders[i])
		}
	}
	return filtered
}

// BuildReport assembles the full report over orders already filtered to the
// requested range. Revenue figures count dispatched orders only.
func BuildReport(orders []entity.Order, coordinators []entity.SalesCoordinator, from, to time.Time) Report {
	summary := buildSummary(orders)
	topCustomers := TopEntities(orders, CustomerNameKey, 10)

	return Report{
		DateRange:            from.Format("Jan 2, 2006") + " - " + to.Format("Jan 2, 2006"),
		Summary:              summary,
		SalesByCoordinator:   SalesByCoordinator(orders, coordinators),
		StatusDistribution:   StatusDistribution(orders),
		PriorityDistribution: reportPriorityDistribution(orders),
		TopCustomers:         topCustomers,
		Insights: ReportInsights{
			MostPopularProduct:    MostPopularProduct(orders),
			AverageProcessingDays: AverageProcessingDays(orders),
			CustomerRetentionPct:  customerRetention(topCustomers),
		},
	}
}

func buildSummary(orders []entity.Order) ReportSummary {
	s := ReportSummary{TotalOrders: len(orders)}
	for i := range orders {
		switch orders[i].Status {
		case entity.StatusDispatched:
			s.CompletedOrders++
			s.TotalRevenue += orders[i].TotalAmount
		case entity.StatusPendingApproval:
			s.PendingOrders++
		}
	}
	if s.CompletedOrders > 0 {
		s.AverageOrderValue = s.TotalRevenue / float64(s.CompletedOrders)
	}
	return s
}

// SalesByCoordinator computes one performance row per coordinator, revenue
// descending. Coordinators without orders still get a zero row.
func SalesByCoordinator(orders []entity.Order, coordinators []entity.SalesCoordinator) []CoordinatorRow {
	rows := make([]CoordinatorRow, 0, len(coordinators))
	for _, coord := range coordinators {
		row := CoordinatorRow{Name: coord.Name}
		for i := range orders {
			if orders[i].SalesCoordinatorID != coord.ID {
				continue
			}
			row.Orders++
			if orders[i].Status == entity.StatusDispatched {
				row.Revenue += orders[i].TotalAmount
				row.CompletedOrders++
			}
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Revenue > rows[b].Revenue
	})
	return rows
}

// StatusDistribution counts orders per status in canonical chain order,
// dropping statuses with no orders.
func StatusDistribution(orders []entity.Order) []StatusCount {
	counts := make(map[string]int)
	for i := range orders {
		counts[orders[i].Status]++
	}

	statuses := append(append([]string{}, entity.StatusChain...), entity.StatusCancelled)
	out := make([]StatusCount, 0, len(statuses))
	for _, s := range statuses {
		if counts[s] == 0 {
			continue
		}
		out = append(out, StatusCount{Status: entity.StatusLabels[s], Count: counts[s]})
	}
	return out
}

func reportPriorityDistribution(orders []entity.Order) []PriorityCount {
	counts := make(map[string]int)
	for i := range orders {
		counts[orders[i].Priority]++
	}
	out := make([]PriorityCount, 0, len(entity.Priorities))
	for _, p := range entity.Priorities {
		if counts[p] == 0 {
			continue
		}
		out = append(out, PriorityCount{Priority: p, Count: counts[p]})
	}
	return out
}

// MostPopularProduct returns the product name appearing on the most orders,
// or "N/A" when there are none. Orders without a preloaded product name are
// skipped.
func MostPopularProduct(orders []entity.Order) string {
	counts := make(map[string]int)
	first := make(map[string]int)
	for i := range orders {
		if orders[i].ProductName == nil {
			continue
		}
		name := orders[i].ProductName.Name
		if _, ok := counts[name]; !ok {
			first[name] = i
		}
		counts[name]++
	}

	best := "N/A"
	bestCount := 0
	for name, n := range counts {
		if n > bestCount || (n == bestCount && first[name] < first[best]) {
			best = name
			bestCount = n
		}
	}
	return best
}

// AverageProcessingDays is the mean span between order and delivery date over
// dispatched orders, rounded to whole days. Zero when nothing is dispatched.
func AverageProcessingDays(orders []entity.Order) int {
	total := 0.0
	count := 0
	for i := range orders {
		if orders[i].Status != entity.StatusDispatched {
			continue
		}
		total += orders[i].DeliveryDate.Sub(orders[i].OrderDate).Hours() / 24
		count++
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(total / float64(count)))
}

// customerRetention is the share of top customers with repeat business.
func customerRetention(topCustomers []EntityRollup) int {
	if len(topCustomers) == 0 {
		return 0
	}
	repeat := 0
	for _, c := range topCustomers {
		if c.Orders > 1 {
			repeat++
		}
	}
	return int(math.Round(float64(repeat) / float64(len(topCustomers)) * 100))
}
