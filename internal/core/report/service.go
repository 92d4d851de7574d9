// Package report assembles dashboard and report view models. It reads
// entity snapshots through narrow source interfaces and hands the
// derivation work to the stats package; the clock is injected so the same
// snapshot always yields the same report.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/propdesk/propdesk/internal/core/maintenance"
	"github.com/propdesk/propdesk/internal/core/property"
	"github.com/propdesk/propdesk/internal/core/stats"
	"github.com/propdesk/propdesk/internal/core/warranty"
	"github.com/propdesk/propdesk/internal/core/workorder"
)

type PropertySource interface {
	ListAll(ctx context.Context, companyID uuid.UUID) ([]*property.Property, error)
}

type RequestSource interface {
	ListAll(ctx context.Context, companyID uuid.UUID) ([]*maintenance.Request, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*maintenance.Request, error)
}

type WorkOrderSource interface {
	ListAll(ctx context.Context, companyID uuid.UUID) ([]*workorder.WorkOrder, error)
}

type WarrantySource interface {
	ListAll(ctx context.Context, companyID uuid.UUID) ([]*warranty.Warranty, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*warranty.Warranty, error)
}

type Service struct {
	properties PropertySource
	requests   RequestSource
	orders     WorkOrderSource
	warranties WarrantySource

	// Now is swapped for a fixed clock in tests.
	Now func() time.Time
}

func NewService(properties PropertySource, requests RequestSource, orders WorkOrderSource, warranties WarrantySource) *Service {
	return &Service{
		properties: properties,
		requests:   requests,
		orders:     orders,
		warranties: warranties,
		Now:        time.Now,
	}
}

// Dashboard builds the company landing summary. Malformed records degrade
// to warnings; the summary itself is always produced.
func (s *Service) Dashboard(ctx context.Context, companyID uuid.UUID) (*DashboardSummary, error) {
	now := s.Now()

	properties, err := s.properties.ListAll(ctx, companyID)
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.ListAll(ctx, companyID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListAll(ctx, companyID)
	if err != nil {
		return nil, err
	}
	warranties, err := s.warranties.ListAll(ctx, companyID)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		TotalProperties: len(properties),
		ActiveRequests:  stats.CountActive(requests),
		StatusCounts:    stats.GroupCounts(requests, func(r *maintenance.Request) maintenance.Status { return r.Status }),
		PriorityCounts:  stats.GroupCounts(requests, func(r *maintenance.Request) maintenance.Priority { return r.Priority }),
		MonthlyTrend: stats.MonthlyTrend(requests, func(r *maintenance.Request) string {
			return stats.MonthKey(r.CreatedAt)
		}),
	}

	summary.RequestChange = s.requestChange(requests, now)

	spend, warnings := sumBillable(orders)
	summary.TotalSpend = spend
	summary.Warnings = warnings

	for _, w := range warranties {
		band, err := stats.WarrantyExpiry(w, now)
		if err != nil {
			summary.Warnings = append(summary.Warnings, err.Error())
			continue
		}
		if band == stats.ExpiryExpiringSoon {
			summary.ExpiringWarranties = append(summary.ExpiringWarranties, WarrantyBand{
				Warranty:      w,
				ExpiryStatus:  band,
				DaysRemaining: stats.DaysUntilExpiry(w, now),
			})
		}
	}

	return summary, nil
}

// requestChange compares this month's request volume with last month's.
func (s *Service) requestChange(requests []*maintenance.Request, now time.Time) float64 {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	currentKey := stats.MonthKey(now)
	previousKey := stats.MonthKey(firstOfMonth.AddDate(0, 0, -1))

	byMonth := stats.GroupCounts(requests, func(r *maintenance.Request) string {
		return stats.MonthKey(r.CreatedAt)
	})
	return stats.PercentChange(float64(byMonth[currentKey]), float64(byMonth[previousKey]))
}

// sumBillable totals actual costs for work orders that were not cancelled.
// A negative cost is reported as a warning and skipped so one bad row
// never zeroes the figure.
func sumBillable(orders []*workorder.WorkOrder) (float64, []string) {
	billable := make([]*workorder.WorkOrder, 0, len(orders))
	for _, wo := range orders {
		if wo.Status != maintenance.StatusCancelled {
			billable = append(billable, wo)
		}
	}

	total, err := stats.SumCosts(billable)
	if err == nil {
		return total, nil
	}

	var warnings []string
	total = 0
	for _, wo := range billable {
		sum, err := stats.SumCosts([]*workorder.WorkOrder{wo})
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		total += sum
	}
	return total, warnings
}

// Expenses builds the per-property cost report. Requests without a
// property are counted as excluded, and per-record failures are reported
// alongside the figures.
func (s *Service) Expenses(ctx context.Context, companyID uuid.UUID) (*ExpenseReport, error) {
	properties, err := s.properties.ListAll(ctx, companyID)
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.ListAll(ctx, companyID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListAll(ctx, companyID)
	if err != nil {
		return nil, err
	}

	summary := stats.ExpensesByProperty(requests, orders)

	report := &ExpenseReport{
		Properties: make([]PropertyExpense, 0, len(summary.ByProperty)),
		Excluded:   summary.Excluded,
	}
	for _, err := range summary.Failures {
		report.Failures = append(report.Failures, err.Error())
	}

	// Walk properties in storage order so the report is stable and lists
	// zero-spend properties too.
	for _, p := range properties {
		total := summary.ByProperty[p.ID]
		report.Properties = append(report.Properties, PropertyExpense{
			PropertyID: p.ID,
			Title:      p.Title,
			Total:      total,
		})
		report.Total += total
	}

	return report, nil
}

// PropertyOverview builds the derived block for a single property.
func (s *Service) PropertyOverview(ctx context.Context, companyID, propertyID uuid.UUID) (*PropertyOverview, error) {
	now := s.Now()

	requests, err := s.requests.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	warranties, err := s.warranties.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListAll(ctx, companyID)
	if err != nil {
		return nil, err
	}

	byRequest := make(map[uuid.UUID]bool, len(requests))
	for _, req := range requests {
		byRequest[req.ID] = true
	}
	scoped := make([]*workorder.WorkOrder, 0, len(orders))
	for _, wo := range orders {
		if byRequest[wo.RequestID] {
			scoped = append(scoped, wo)
		}
	}

	overview := &PropertyOverview{
		PropertyID:     propertyID,
		StatusCounts:   stats.GroupCounts(requests, func(r *maintenance.Request) maintenance.Status { return r.Status }),
		ActiveRequests: stats.CountActive(requests),
	}

	spend, warnings := sumBillable(scoped)
	overview.TotalSpend = spend
	overview.Warnings = warnings

	for _, w := range warranties {
		band, err := stats.WarrantyExpiry(w, now)
		if err != nil {
			overview.Warnings = append(overview.Warnings, err.Error())
			continue
		}
		overview.Warranties = append(overview.Warranties, WarrantyBand{
			Warranty:      w,
			ExpiryStatus:  band,
			DaysRemaining: stats.DaysUntilExpiry(w, now),
		})
	}

	return overview, nil
}
