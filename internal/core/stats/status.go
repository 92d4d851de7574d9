// Package stats derives statuses and summary figures from entity
// snapshots. Every function is pure: the current time is always a
// parameter, nothing is read from or written to storage, and calling a
// function twice with the same input yields the same output.
package stats

import (
	"math"
	"time"

	"github.com/propdesk/propdesk/internal/core/maintenance"
	"github.com/propdesk/propdesk/internal/core/warranty"
)

// ExpiryStatus is the warranty expiry band.
type ExpiryStatus string

const (
	ExpiryExpired      ExpiryStatus = "expired"
	ExpiryExpiringSoon ExpiryStatus = "expiring_soon"
	ExpiryActive       ExpiryStatus = "active"
)

// ExpiringSoonDays is the width of the expiring_soon band.
const ExpiringSoonDays = 30

// DaysUntilExpiry returns the number of days until the warranty ends,
// with partial days rounded up. A warranty that ended in the past yields
// a negative count.
func DaysUntilExpiry(w *warranty.Warranty, now time.Time) int {
	return int(math.Ceil(w.EndDate.Sub(now).Hours() / 24))
}

// WarrantyExpiry classifies a warranty against now. Strictly past the end
// date is expired; within ExpiringSoonDays (including ending today) is
// expiring_soon; otherwise active. A warranty whose end date precedes its
// start date is a data-quality error and is surfaced, not guessed at.
func WarrantyExpiry(w *warranty.Warranty, now time.Time) (ExpiryStatus, error) {
	if w.EndDate.Before(w.StartDate) {
		return "", &DataIntegrityError{
			EntityID: w.ID.String(),
			Reason:   "warranty end date precedes start date",
		}
	}
	if now.After(w.EndDate) {
		return ExpiryExpired, nil
	}
	if DaysUntilExpiry(w, now) < ExpiringSoonDays {
		return ExpiryExpiringSoon, nil
	}
	return ExpiryActive, nil
}

// StatusCategory is a presentation-neutral grouping for request and work
// order statuses. The renderer decides colors; this package only names the
// band.
type StatusCategory string

const (
	CategoryPending    StatusCategory = "pending"
	CategoryInProgress StatusCategory = "in_progress"
	CategoryCompleted  StatusCategory = "completed"
	CategoryCancelled  StatusCategory = "cancelled"
)

// StatusCategoryOf maps a status to its category. The function is total:
// an unknown or empty status lands in the pending category, the same
// default applied to requests stored without a status.
func StatusCategoryOf(s maintenance.Status) StatusCategory {
	switch s {
	case maintenance.StatusInProgress:
		return CategoryInProgress
	case maintenance.StatusCompleted:
		return CategoryCompleted
	case maintenance.StatusCancelled:
		return CategoryCancelled
	default:
		return CategoryPending
	}
}

// Urgency grades a maintenance request from its priority alone.
type Urgency string

const (
	UrgencyRoutine  Urgency = "routine"
	UrgencyElevated Urgency = "elevated"
	UrgencyCritical Urgency = "critical"
)

// RequestUrgency is total over priorities; an unknown priority grades as
// routine.
func RequestUrgency(p maintenance.Priority) Urgency {
	switch p {
	case maintenance.PriorityMedium:
		return UrgencyElevated
	case maintenance.PriorityHigh:
		return UrgencyCritical
	default:
		return UrgencyRoutine
	}
}

// CountActive counts requests that are not in a terminal status.
// Completed and cancelled requests never count as active.
func CountActive(requests []*maintenance.Request) int {
	active := 0
	for _, req := range requests {
		if !req.Status.Terminal() {
			active++
		}
	}
	return active
}
