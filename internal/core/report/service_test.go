package report

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/propdesk/propdesk/internal/core/maintenance"
	"github.com/propdesk/propdesk/internal/core/property"
	"github.com/propdesk/propdesk/internal/core/stats"
	"github.com/propdesk/propdesk/internal/core/warranty"
	"github.com/propdesk/propdesk/internal/core/workorder"
)

type fakePropertySource struct {
	properties []*property.Property
}

func (f *fakePropertySource) ListAll(ctx context.Context, companyID uuid.UUID) ([]*property.Property, error) {
	return f.properties, nil
}

type fakeRequestSource struct {
	requests []*maintenance.Request
}

func (f *fakeRequestSource) ListAll(ctx context.Context, companyID uuid.UUID) ([]*maintenance.Request, error) {
	return f.requests, nil
}

func (f *fakeRequestSource) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*maintenance.Request, error) {
	var out []*maintenance.Request
	for _, r := range f.requests {
		if r.PropertyID != nil && *r.PropertyID == propertyID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeWorkOrderSource struct {
	orders []*workorder.WorkOrder
}

func (f *fakeWorkOrderSource) ListAll(ctx context.Context, companyID uuid.UUID) ([]*workorder.WorkOrder, error) {
	return f.orders, nil
}

type fakeWarrantySource struct {
	warranties []*warranty.Warranty
}

func (f *fakeWarrantySource) ListAll(ctx context.Context, companyID uuid.UUID) ([]*warranty.Warranty, error) {
	return f.warranties, nil
}

func (f *fakeWarrantySource) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*warranty.Warranty, error) {
	var out []*warranty.Warranty
	for _, w := range f.warranties {
		if w.PropertyID == propertyID {
			out = append(out, w)
		}
	}
	return out, nil
}

func floatPtr(v float64) *float64 { return &v }

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestService(props []*property.Property, reqs []*maintenance.Request, orders []*workorder.WorkOrder, warranties []*warranty.Warranty) *Service {
	svc := NewService(
		&fakePropertySource{properties: props},
		&fakeRequestSource{requests: reqs},
		&fakeWorkOrderSource{orders: orders},
		&fakeWarrantySource{warranties: warranties},
	)
	svc.Now = func() time.Time { return testNow }
	return svc
}

func TestDashboard(t *testing.T) {
	companyID := uuid.New()
	p1 := &property.Property{ID: uuid.New(), CompanyID: companyID, Title: "Oak House"}

	r1 := &maintenance.Request{
		ID:         uuid.New(),
		PropertyID: &p1.ID,
		Status:     maintenance.StatusCompleted,
		Priority:   maintenance.PriorityHigh,
		CreatedAt:  testNow.AddDate(0, 0, -2),
	}
	r2 := &maintenance.Request{
		ID:        uuid.New(),
		Status:    maintenance.StatusPending,
		Priority:  maintenance.PriorityLow,
		CreatedAt: testNow.AddDate(0, -1, 0),
	}

	orders := []*workorder.WorkOrder{
		{ID: uuid.New(), RequestID: r1.ID, ActualCost: floatPtr(200), Status: maintenance.StatusCompleted},
		{ID: uuid.New(), RequestID: r2.ID, ActualCost: floatPtr(999), Status: maintenance.StatusCancelled},
	}

	warranties := []*warranty.Warranty{
		{ID: uuid.New(), PropertyID: p1.ID, StartDate: testNow.AddDate(-1, 0, 0), EndDate: testNow.AddDate(0, 0, 10)},
		{ID: uuid.New(), PropertyID: p1.ID, StartDate: testNow.AddDate(-1, 0, 0), EndDate: testNow.AddDate(1, 0, 0)},
	}

	svc := newTestService([]*property.Property{p1}, []*maintenance.Request{r1, r2}, orders, warranties)

	summary, err := svc.Dashboard(context.Background(), companyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalProperties != 1 {
		t.Errorf("TotalProperties = %d, want 1", summary.TotalProperties)
	}
	if summary.ActiveRequests != 1 {
		t.Errorf("ActiveRequests = %d, want 1", summary.ActiveRequests)
	}
	if summary.StatusCounts[maintenance.StatusCompleted] != 1 || summary.StatusCounts[maintenance.StatusPending] != 1 {
		t.Errorf("StatusCounts = %v, want completed:1 pending:1", summary.StatusCounts)
	}
	if summary.PriorityCounts[maintenance.PriorityHigh] != 1 || summary.PriorityCounts[maintenance.PriorityLow] != 1 {
		t.Errorf("PriorityCounts = %v", summary.PriorityCounts)
	}

	// Cancelled work orders never count toward spend
	if math.Abs(summary.TotalSpend-200) > 1e-9 {
		t.Errorf("TotalSpend = %v, want 200", summary.TotalSpend)
	}

	// One request this month, one last month
	if math.Abs(summary.RequestChange-0) > 1e-9 {
		t.Errorf("RequestChange = %v, want 0", summary.RequestChange)
	}

	if len(summary.ExpiringWarranties) != 1 {
		t.Fatalf("ExpiringWarranties has %d entries, want 1", len(summary.ExpiringWarranties))
	}
	band := summary.ExpiringWarranties[0]
	if band.ExpiryStatus != stats.ExpiryExpiringSoon {
		t.Errorf("ExpiryStatus = %q, want expiring_soon", band.ExpiryStatus)
	}
	if band.DaysRemaining != 10 {
		t.Errorf("DaysRemaining = %d, want 10", band.DaysRemaining)
	}

	if len(summary.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", summary.Warnings)
	}
}

func TestDashboard_BadWarrantyBecomesWarning(t *testing.T) {
	companyID := uuid.New()
	warranties := []*warranty.Warranty{
		{ID: uuid.New(), StartDate: testNow, EndDate: testNow.AddDate(0, 0, -5)},
	}

	svc := newTestService(nil, nil, nil, warranties)

	summary, err := svc.Dashboard(context.Background(), companyID)
	if err != nil {
		t.Fatalf("a bad warranty must degrade to a warning, got error: %v", err)
	}
	if len(summary.Warnings) != 1 {
		t.Errorf("Warnings has %d entries, want 1", len(summary.Warnings))
	}
	if len(summary.ExpiringWarranties) != 0 {
		t.Errorf("bad warranty should not be listed as expiring")
	}
}

func TestDashboard_NegativeCostIsolated(t *testing.T) {
	companyID := uuid.New()
	r1 := &maintenance.Request{ID: uuid.New(), Status: maintenance.StatusPending, CreatedAt: testNow}
	orders := []*workorder.WorkOrder{
		{ID: uuid.New(), RequestID: r1.ID, ActualCost: floatPtr(50), Status: maintenance.StatusCompleted},
		{ID: uuid.New(), RequestID: r1.ID, ActualCost: floatPtr(-10), Status: maintenance.StatusCompleted},
	}

	svc := newTestService(nil, []*maintenance.Request{r1}, orders, nil)

	summary, err := svc.Dashboard(context.Background(), companyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(summary.TotalSpend-50) > 1e-9 {
		t.Errorf("TotalSpend = %v, want 50 with the bad row skipped", summary.TotalSpend)
	}
	if len(summary.Warnings) != 1 {
		t.Errorf("Warnings has %d entries, want 1", len(summary.Warnings))
	}
}

func TestExpenses(t *testing.T) {
	companyID := uuid.New()
	p1 := &property.Property{ID: uuid.New(), CompanyID: companyID, Title: "Oak House"}
	p2 := &property.Property{ID: uuid.New(), CompanyID: companyID, Title: "Elm Flat"}

	r1 := &maintenance.Request{ID: uuid.New(), PropertyID: &p1.ID, Status: maintenance.StatusCompleted}
	r2 := &maintenance.Request{ID: uuid.New(), Status: maintenance.StatusPending}

	orders := []*workorder.WorkOrder{
		{ID: uuid.New(), RequestID: r1.ID, ActualCost: floatPtr(120), Status: maintenance.StatusCompleted},
		{ID: uuid.New(), RequestID: r1.ID, ActualCost: floatPtr(80), Status: maintenance.StatusCompleted},
		{ID: uuid.New(), RequestID: r2.ID, ActualCost: floatPtr(55), Status: maintenance.StatusCompleted},
	}

	svc := newTestService([]*property.Property{p1, p2}, []*maintenance.Request{r1, r2}, orders, nil)

	rep, err := svc.Expenses(context.Background(), companyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rep.Properties) != 2 {
		t.Fatalf("Properties has %d entries, want 2", len(rep.Properties))
	}
	if rep.Properties[0].Title != "Oak House" || math.Abs(rep.Properties[0].Total-200) > 1e-9 {
		t.Errorf("first row = %+v, want Oak House with 200", rep.Properties[0])
	}
	if rep.Properties[1].Title != "Elm Flat" || rep.Properties[1].Total != 0 {
		t.Errorf("second row = %+v, want Elm Flat with 0", rep.Properties[1])
	}
	if rep.Excluded != 1 {
		t.Errorf("Excluded = %d, want 1", rep.Excluded)
	}
	if math.Abs(rep.Total-200) > 1e-9 {
		t.Errorf("Total = %v, want 200", rep.Total)
	}
}

func TestPropertyOverview(t *testing.T) {
	companyID := uuid.New()
	p1 := &property.Property{ID: uuid.New(), CompanyID: companyID, Title: "Oak House"}
	p2 := &property.Property{ID: uuid.New(), CompanyID: companyID, Title: "Elm Flat"}

	r1 := &maintenance.Request{ID: uuid.New(), PropertyID: &p1.ID, Status: maintenance.StatusInProgress}
	r2 := &maintenance.Request{ID: uuid.New(), PropertyID: &p2.ID, Status: maintenance.StatusPending}

	orders := []*workorder.WorkOrder{
		{ID: uuid.New(), RequestID: r1.ID, ActualCost: floatPtr(90), Status: maintenance.StatusInProgress},
		{ID: uuid.New(), RequestID: r2.ID, ActualCost: floatPtr(500), Status: maintenance.StatusPending},
	}

	warranties := []*warranty.Warranty{
		{ID: uuid.New(), PropertyID: p1.ID, StartDate: testNow.AddDate(-1, 0, 0), EndDate: testNow.AddDate(0, 6, 0)},
	}

	svc := newTestService([]*property.Property{p1, p2}, []*maintenance.Request{r1, r2}, orders, warranties)

	overview, err := svc.PropertyOverview(context.Background(), companyID, p1.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if overview.ActiveRequests != 1 {
		t.Errorf("ActiveRequests = %d, want 1", overview.ActiveRequests)
	}
	if math.Abs(overview.TotalSpend-90) > 1e-9 {
		t.Errorf("TotalSpend = %v, want 90 (other property's orders excluded)", overview.TotalSpend)
	}
	if len(overview.Warranties) != 1 {
		t.Fatalf("Warranties has %d entries, want 1", len(overview.Warranties))
	}
	if overview.Warranties[0].ExpiryStatus != stats.ExpiryActive {
		t.Errorf("ExpiryStatus = %q, want active", overview.Warranties[0].ExpiryStatus)
	}
}
