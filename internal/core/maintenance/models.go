package maintenance

import (
	"time"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status is shared with work orders. Completed and cancelled are terminal:
// a request never leaves either state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Request is a maintenance request. PropertyID may be nil when the property
// was deleted after the request was filed; reports count such requests as
// excluded rather than dropping them silently.
type Request struct {
	ID          uuid.UUID  `json:"id"`
	CompanyID   uuid.UUID  `json:"company_id"`
	PropertyID  *uuid.UUID `json:"property_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	RequestedBy *uuid.UUID `json:"requested_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CreateRequestInput struct {
	PropertyID  *uuid.UUID `json:"property_id"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
}

type UpdateRequestInput struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Priority    *Priority `json:"priority"`
}

type UpdateStatusInput struct {
	Status Status `json:"status" binding:"required"`
}

type ListRequestsResponse struct {
	Requests []*Request `json:"requests"`
	Total    int        `json:"total"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}
