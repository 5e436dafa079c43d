package report

import (
	"time"

	"amalkitchen-be/internal/order"
)

// StatusCount is one row of the dashboard's per-status breakdown.
type StatusCount struct {
	Status order.Status `json:"status"`
	Count  int          `json:"count"`
}

// DayRevenue buckets completed-order revenue for one calendar day.
type DayRevenue struct {
	Day     time.Time `json:"day"`
	Revenue float64   `json:"revenue"`
}

// BranchRevenue totals revenue per fulfilling branch.
type BranchRevenue struct {
	Branch  string  `json:"branch"`
	Revenue float64 `json:"revenue"`
}

// Summary is the dashboard view. Branch is empty for the global admin
// scope.
type Summary struct {
	Branch          string          `json:"branch,omitempty"`
	StatusCounts    []StatusCount   `json:"status_counts"`
	RevenueByDay    []DayRevenue    `json:"revenue_by_day"`
	RevenueByBranch []BranchRevenue `json:"revenue_by_branch"`
}

// PrepLine is one product's total quantity across all active orders.
type PrepLine struct {
	Title    string  `json:"title"`
	Unit     string  `json:"unit,omitempty"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}

// PrepGroup is the prep lines for one catalog category.
type PrepGroup struct {
	Category string     `json:"category"`
	Lines    []PrepLine `json:"lines"`
}

// PrepSheet is the kitchen planning view: everything that still has to
// be made, grouped by catalog category.
type PrepSheet struct {
	GeneratedAt time.Time   `json:"generated_at"`
	Groups      []PrepGroup `json:"groups"`
}
