package stats

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/propdesk/propdesk/internal/core/maintenance"
	"github.com/propdesk/propdesk/internal/core/workorder"
)

func floatPtr(v float64) *float64 { return &v }

func TestGroupCounts(t *testing.T) {
	requests := []*maintenance.Request{
		{Status: maintenance.StatusPending},
		{Status: maintenance.StatusPending},
		{Status: maintenance.StatusCompleted},
	}

	counts := GroupCounts(requests, func(r *maintenance.Request) maintenance.Status { return r.Status })

	if counts[maintenance.StatusPending] != 2 {
		t.Errorf("pending = %d, want 2", counts[maintenance.StatusPending])
	}
	if counts[maintenance.StatusCompleted] != 1 {
		t.Errorf("completed = %d, want 1", counts[maintenance.StatusCompleted])
	}
	if _, ok := counts[maintenance.StatusCancelled]; ok {
		t.Error("absent keys should not appear in the result")
	}
}

func TestGroupCounts_OrderInvariant(t *testing.T) {
	a := []*maintenance.Request{
		{Status: maintenance.StatusPending},
		{Status: maintenance.StatusInProgress},
		{Status: maintenance.StatusPending},
	}
	b := []*maintenance.Request{a[2], a[0], a[1]}

	key := func(r *maintenance.Request) maintenance.Status { return r.Status }
	ca := GroupCounts(a, key)
	cb := GroupCounts(b, key)

	if len(ca) != len(cb) {
		t.Fatalf("count maps differ in size: %d vs %d", len(ca), len(cb))
	}
	for k, v := range ca {
		if cb[k] != v {
			t.Errorf("key %q: %d vs %d", k, v, cb[k])
		}
	}
}

func TestSumCosts(t *testing.T) {
	orders := []*workorder.WorkOrder{
		{ID: uuid.New(), ActualCost: floatPtr(10.5)},
		{ID: uuid.New(), ActualCost: nil},
		{ID: uuid.New(), ActualCost: floatPtr(4.25)},
	}

	total, err := SumCosts(orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(total-14.75) > 1e-9 {
		t.Errorf("total = %v, want 14.75", total)
	}
}

func TestSumCosts_Empty(t *testing.T) {
	total, err := SumCosts(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %v, want 0", total)
	}
}

func TestSumCosts_NegativeCost(t *testing.T) {
	orders := []*workorder.WorkOrder{
		{ID: uuid.New(), ActualCost: floatPtr(-5)},
	}

	_, err := SumCosts(orders)
	if err == nil {
		t.Fatal("expected error for negative cost")
	}
	if !IsDataIntegrityError(err) {
		t.Errorf("expected DataIntegrityError, got %T", err)
	}
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name              string
		current, previous float64
		want              float64
	}{
		{"both zero", 0, 0, 0},
		{"growth from zero saturates", 5, 0, 1},
		{"halved", 50, 100, -0.5},
		{"up fifty percent", 150, 100, 0.5},
		{"unchanged", 100, 100, 0},
		{"dropped to zero", 0, 40, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentChange(tt.current, tt.previous)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PercentChange(%v, %v) = %v, want %v", tt.current, tt.previous, got, tt.want)
			}
		})
	}
}

func TestExpensesByProperty(t *testing.T) {
	p1 := uuid.New()
	r1 := &maintenance.Request{ID: uuid.New(), PropertyID: &p1}
	r2 := &maintenance.Request{ID: uuid.New(), PropertyID: nil}

	orders := []*workorder.WorkOrder{
		{ID: uuid.New(), RequestID: r1.ID, ActualCost: floatPtr(120)},
		{ID: uuid.New(), RequestID: r1.ID, ActualCost: floatPtr(80)},
		{ID: uuid.New(), RequestID: r2.ID, ActualCost: floatPtr(55)},
	}

	summary := ExpensesByProperty([]*maintenance.Request{r1, r2}, orders)

	if len(summary.ByProperty) != 1 {
		t.Fatalf("ByProperty has %d entries, want 1", len(summary.ByProperty))
	}
	if math.Abs(summary.ByProperty[p1]-200) > 1e-9 {
		t.Errorf("ByProperty[p1] = %v, want 200", summary.ByProperty[p1])
	}
	if summary.Excluded != 1 {
		t.Errorf("Excluded = %d, want 1", summary.Excluded)
	}
	if len(summary.Failures) != 0 {
		t.Errorf("unexpected failures: %v", summary.Failures)
	}
}

func TestExpensesByProperty_ExcludedPerRequestNotPerOrder(t *testing.T) {
	r := &maintenance.Request{ID: uuid.New(), PropertyID: nil}
	orders := []*workorder.WorkOrder{
		{ID: uuid.New(), RequestID: r.ID, ActualCost: floatPtr(10)},
		{ID: uuid.New(), RequestID: r.ID, ActualCost: floatPtr(20)},
		{ID: uuid.New(), RequestID: r.ID, ActualCost: floatPtr(30)},
	}

	summary := ExpensesByProperty([]*maintenance.Request{r}, orders)

	if summary.Excluded != 1 {
		t.Errorf("Excluded = %d, want 1 regardless of order count", summary.Excluded)
	}
}

func TestExpensesByProperty_OrphanedWorkOrder(t *testing.T) {
	p1 := uuid.New()
	r1 := &maintenance.Request{ID: uuid.New(), PropertyID: &p1}

	orders := []*workorder.WorkOrder{
		{ID: uuid.New(), RequestID: r1.ID, ActualCost: floatPtr(100)},
		{ID: uuid.New(), RequestID: uuid.New(), ActualCost: floatPtr(999)},
	}

	summary := ExpensesByProperty([]*maintenance.Request{r1}, orders)

	if math.Abs(summary.ByProperty[p1]-100) > 1e-9 {
		t.Errorf("ByProperty[p1] = %v, want 100", summary.ByProperty[p1])
	}
	if len(summary.Failures) != 1 {
		t.Fatalf("Failures has %d entries, want 1", len(summary.Failures))
	}
	if !IsMissingReferenceError(summary.Failures[0]) {
		t.Errorf("expected MissingReferenceError, got %T", summary.Failures[0])
	}
}

func TestExpensesByProperty_NegativeCostIsolated(t *testing.T) {
	p1 := uuid.New()
	r1 := &maintenance.Request{ID: uuid.New(), PropertyID: &p1}

	orders := []*workorder.WorkOrder{
		{ID: uuid.New(), RequestID: r1.ID, ActualCost: floatPtr(100)},
		{ID: uuid.New(), RequestID: r1.ID, ActualCost: floatPtr(-40)},
	}

	summary := ExpensesByProperty([]*maintenance.Request{r1}, orders)

	if math.Abs(summary.ByProperty[p1]-100) > 1e-9 {
		t.Errorf("good rows should still be summed, got %v", summary.ByProperty[p1])
	}
	if len(summary.Failures) != 1 {
		t.Fatalf("Failures has %d entries, want 1", len(summary.Failures))
	}
	if !IsDataIntegrityError(summary.Failures[0]) {
		t.Errorf("expected DataIntegrityError, got %T", summary.Failures[0])
	}
}

func TestExpensesByProperty_Idempotent(t *testing.T) {
	p1 := uuid.New()
	r1 := &maintenance.Request{ID: uuid.New(), PropertyID: &p1}
	orders := []*workorder.WorkOrder{
		{ID: uuid.New(), RequestID: r1.ID, ActualCost: floatPtr(75)},
	}

	first := ExpensesByProperty([]*maintenance.Request{r1}, orders)
	second := ExpensesByProperty([]*maintenance.Request{r1}, orders)

	if first.ByProperty[p1] != second.ByProperty[p1] {
		t.Errorf("repeated runs disagree: %v vs %v", first.ByProperty[p1], second.ByProperty[p1])
	}
	if first.Excluded != second.Excluded {
		t.Errorf("Excluded disagrees: %d vs %d", first.Excluded, second.Excluded)
	}
}

func TestMonthlyTrend_SortedSparse(t *testing.T) {
	requests := []*maintenance.Request{
		{CreatedAt: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
		{CreatedAt: time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)},
		{CreatedAt: time.Date(2026, 3, 28, 0, 0, 0, 0, time.UTC)},
	}

	trend := MonthlyTrend(requests, func(r *maintenance.Request) string {
		return MonthKey(r.CreatedAt)
	})

	// February has no requests and must be absent, not zero
	want := []MonthCount{
		{Month: "2026-01", Count: 1},
		{Month: "2026-03", Count: 2},
	}

	if len(trend) != len(want) {
		t.Fatalf("trend has %d buckets, want %d", len(trend), len(want))
	}
	for i := range want {
		if trend[i] != want[i] {
			t.Errorf("bucket %d = %+v, want %+v", i, trend[i], want[i])
		}
	}
}

func TestMonthKey(t *testing.T) {
	ts := time.Date(2026, 9, 1, 23, 59, 0, 0, time.UTC)
	if got := MonthKey(ts); got != "2026-09" {
		t.Errorf("MonthKey = %q, want %q", got, "2026-09")
	}
}
