package stats

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/propdesk/propdesk/internal/core/maintenance"
	"github.com/propdesk/propdesk/internal/core/warranty"
)

func warrantyEnding(end time.Time) *warranty.Warranty {
	return &warranty.Warranty{
		ID:        uuid.New(),
		StartDate: end.AddDate(-1, 0, 0),
		EndDate:   end,
	}
}

func TestWarrantyExpiry_Bands(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want ExpiryStatus
	}{
		{"one day past end", now.AddDate(0, 0, -1), ExpiryExpired},
		{"one second past end", now.Add(-time.Second), ExpiryExpired},
		{"ends later today", now.Add(6 * time.Hour), ExpiryExpiringSoon},
		{"ends in 29 days", now.AddDate(0, 0, 29), ExpiryExpiringSoon},
		{"ends in 30 days", now.AddDate(0, 0, 30), ExpiryActive},
		{"ends in a year", now.AddDate(1, 0, 0), ExpiryActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WarrantyExpiry(warrantyEnding(tt.end), now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWarrantyExpiry_ExactEndInstant(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	w := warrantyEnding(now)

	// now.After(end) is false at the exact end instant
	got, err := WarrantyExpiry(w, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != ExpiryExpiringSoon {
		t.Errorf("warranty ending exactly now should be expiring_soon, got %q", got)
	}
}

func TestWarrantyExpiry_EndBeforeStart(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	w := &warranty.Warranty{
		ID:        uuid.New(),
		StartDate: now,
		EndDate:   now.AddDate(0, 0, -10),
	}

	_, err := WarrantyExpiry(w, now)
	if err == nil {
		t.Fatal("expected error for warranty ending before it starts")
	}
	if !IsDataIntegrityError(err) {
		t.Errorf("expected DataIntegrityError, got %T", err)
	}
}

func TestDaysUntilExpiry(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"ends in exactly 10 days", now.AddDate(0, 0, 10), 10},
		{"partial day rounds up", now.Add(36 * time.Hour), 2},
		{"ends later today", now.Add(6 * time.Hour), 1},
		{"already ended", now.Add(-30 * time.Hour), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntilExpiry(warrantyEnding(tt.end), now); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWarrantyExpiry_Deterministic(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	w := warrantyEnding(now.AddDate(0, 0, 14))

	first, err := WarrantyExpiry(w, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := WarrantyExpiry(w, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("same input produced %q then %q", first, second)
	}
}

func TestStatusCategoryOf(t *testing.T) {
	tests := []struct {
		status maintenance.Status
		want   StatusCategory
	}{
		{maintenance.StatusPending, CategoryPending},
		{maintenance.StatusInProgress, CategoryInProgress},
		{maintenance.StatusCompleted, CategoryCompleted},
		{maintenance.StatusCancelled, CategoryCancelled},
		{maintenance.Status("on_hold"), CategoryPending},
		{maintenance.Status(""), CategoryPending},
	}

	for _, tt := range tests {
		if got := StatusCategoryOf(tt.status); got != tt.want {
			t.Errorf("StatusCategoryOf(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestRequestUrgency(t *testing.T) {
	tests := []struct {
		priority maintenance.Priority
		want     Urgency
	}{
		{maintenance.PriorityLow, UrgencyRoutine},
		{maintenance.PriorityMedium, UrgencyElevated},
		{maintenance.PriorityHigh, UrgencyCritical},
		{maintenance.Priority("urgent"), UrgencyRoutine},
		{maintenance.Priority(""), UrgencyRoutine},
	}

	for _, tt := range tests {
		if got := RequestUrgency(tt.priority); got != tt.want {
			t.Errorf("RequestUrgency(%q) = %q, want %q", tt.priority, got, tt.want)
		}
	}
}

func TestCountActive(t *testing.T) {
	requests := []*maintenance.Request{
		{ID: uuid.New(), Status: maintenance.StatusPending},
		{ID: uuid.New(), Status: maintenance.StatusInProgress},
		{ID: uuid.New(), Status: maintenance.StatusCompleted},
		{ID: uuid.New(), Status: maintenance.StatusCancelled},
	}

	if got := CountActive(requests); got != 2 {
		t.Errorf("CountActive = %d, want 2", got)
	}

	if got := CountActive(nil); got != 0 {
		t.Errorf("CountActive(nil) = %d, want 0", got)
	}
}
