package report

import (
	"github.com/google/uuid"

	"github.com/propdesk/propdesk/internal/core/maintenance"
	"github.com/propdesk/propdesk/internal/core/stats"
	"github.com/propdesk/propdesk/internal/core/warranty"
)

// DashboardSummary is the aggregate view behind the landing screen. All
// values are raw numbers and categorical labels; formatting is the
// client's job.
type DashboardSummary struct {
	TotalProperties    int                          `json:"total_properties"`
	ActiveRequests     int                          `json:"active_requests"`
	StatusCounts       map[maintenance.Status]int   `json:"status_counts"`
	PriorityCounts     map[maintenance.Priority]int `json:"priority_counts"`
	MonthlyTrend       []stats.MonthCount           `json:"monthly_trend"`
	RequestChange      float64                      `json:"request_change"`
	TotalSpend         float64                      `json:"total_spend"`
	ExpiringWarranties []WarrantyBand               `json:"expiring_warranties"`
	Warnings           []string                     `json:"warnings,omitempty"`
}

// WarrantyBand pairs a warranty with its derived expiry classification.
type WarrantyBand struct {
	Warranty      *warranty.Warranty `json:"warranty"`
	ExpiryStatus  stats.ExpiryStatus `json:"expiry_status"`
	DaysRemaining int                `json:"days_remaining"`
}

type PropertyExpense struct {
	PropertyID uuid.UUID `json:"property_id"`
	Title      string    `json:"title"`
	Total      float64   `json:"total"`
}

// ExpenseReport is the per-property cost rollup. Excluded counts requests
// without a property reference; Failures carries per-record reasons so one
// malformed row never hides the rest.
type ExpenseReport struct {
	Properties []PropertyExpense `json:"properties"`
	Total      float64           `json:"total"`
	Excluded   int               `json:"excluded"`
	Failures   []string          `json:"failures,omitempty"`
}

// PropertyOverview is the derived block on the property detail screen.
type PropertyOverview struct {
	PropertyID     uuid.UUID                  `json:"property_id"`
	StatusCounts   map[maintenance.Status]int `json:"status_counts"`
	ActiveRequests int                        `json:"active_requests"`
	TotalSpend     float64                    `json:"total_spend"`
	Warranties     []WarrantyBand             `json:"warranties"`
	Warnings       []string                   `json:"warnings,omitempty"`
}
