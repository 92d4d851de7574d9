package stats

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/propdesk/propdesk/internal/core/maintenance"
	"github.com/propdesk/propdesk/internal/core/workorder"
)

// GroupCounts tallies items by the key the extractor assigns. Keys that no
// item maps to are absent from the result; callers that need zero-filled
// categories fill them in afterwards.
func GroupCounts[T any, K comparable](items []T, key func(T) K) map[K]int {
	counts := make(map[K]int, len(items))
	for _, item := range items {
		counts[key(item)]++
	}
	return counts
}

// SumCosts totals actual costs across work orders. A nil cost contributes
// zero. The function is blind to status: callers that must not count
// cancelled orders filter before summing. A negative cost is a data
// integrity violation naming the work order.
func SumCosts(orders []*workorder.WorkOrder) (float64, error) {
	var total float64
	for _, wo := range orders {
		if wo.ActualCost == nil {
			continue
		}
		if *wo.ActualCost < 0 {
			return 0, &DataIntegrityError{
				EntityID: wo.ID.String(),
				Reason:   "negative actual cost",
			}
		}
		total += *wo.ActualCost
	}
	return total, nil
}

// PercentChange returns the relative change from previous to current as a
// ratio (0.5 means +50%). A zero previous value saturates instead of
// dividing by zero: the change is 0 when current is also 0 and 1 otherwise.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 1
	}
	return (current - previous) / previous
}

// ExpenseSummary is the per-property cost rollup. Excluded counts the
// requests that carry no property reference, one entry per request.
// Failures holds per-item errors (orphaned work orders, negative costs);
// a bad record never blanks the rest of the summary.
type ExpenseSummary struct {
	ByProperty map[uuid.UUID]float64 `json:"by_property"`
	Excluded   int                   `json:"excluded"`
	Failures   []error               `json:"-"`
}

// ExpensesByProperty groups work order costs by the property of the parent
// maintenance request.
func ExpensesByProperty(requests []*maintenance.Request, orders []*workorder.WorkOrder) ExpenseSummary {
	summary := ExpenseSummary{ByProperty: make(map[uuid.UUID]float64)}

	byRequest := make(map[uuid.UUID]*maintenance.Request, len(requests))
	for _, req := range requests {
		byRequest[req.ID] = req
		if req.PropertyID == nil {
			summary.Excluded++
		}
	}

	for _, wo := range orders {
		req, ok := byRequest[wo.RequestID]
		if !ok {
			summary.Failures = append(summary.Failures, &MissingReferenceError{
				EntityID:  wo.ID.String(),
				Reference: "maintenance request " + wo.RequestID.String(),
			})
			continue
		}
		if req.PropertyID == nil {
			continue
		}
		if wo.ActualCost == nil {
			continue
		}
		if *wo.ActualCost < 0 {
			summary.Failures = append(summary.Failures, &DataIntegrityError{
				EntityID: wo.ID.String(),
				Reason:   "negative actual cost",
			})
			continue
		}
		summary.ByProperty[*req.PropertyID] += *wo.ActualCost
	}

	return summary
}

// MonthCount is one point of a sparse monthly series.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// MonthKey renders the month bucket for a timestamp. The format sorts
// lexicographically in chronological order.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthlyTrend buckets items by month and returns the buckets in ascending
// order. Months without items are omitted; callers needing a dense series
// backfill zeros themselves.
func MonthlyTrend[T any](items []T, monthOf func(T) string) []MonthCount {
	counts := GroupCounts(items, monthOf)

	trend := make([]MonthCount, 0, len(counts))
	for month, count := range counts {
		trend = append(trend, MonthCount{Month: month, Count: count})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Month < trend[j].Month })
	return trend
}
