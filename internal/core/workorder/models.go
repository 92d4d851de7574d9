package workorder

import (
	"time"

	"github.com/google/uuid"

	"github.com/propdesk/propdesk/internal/core/maintenance"
)

// WorkOrder carries out a maintenance request. It shares the request's
// status enum. Costs are optional until the work is quoted or invoiced.
type WorkOrder struct {
	ID            uuid.UUID          `json:"id"`
	CompanyID     uuid.UUID          `json:"company_id"`
	RequestID     uuid.UUID          `json:"request_id"`
	ContractorID  *uuid.UUID         `json:"contractor_id,omitempty"`
	ScheduledDate *time.Time         `json:"scheduled_date,omitempty"`
	EstimatedCost *float64           `json:"estimated_cost,omitempty"`
	ActualCost    *float64           `json:"actual_cost,omitempty"`
	Notes         string             `json:"notes"`
	Status        maintenance.Status `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
}

type CreateWorkOrderRequest struct {
	ContractorID  *uuid.UUID `json:"contractor_id"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	EstimatedCost *float64   `json:"estimated_cost"`
	Notes         string     `json:"notes"`
}

type UpdateWorkOrderRequest struct {
	ContractorID  *uuid.UUID          `json:"contractor_id"`
	ScheduledDate *time.Time          `json:"scheduled_date"`
	EstimatedCost *float64            `json:"estimated_cost"`
	ActualCost    *float64            `json:"actual_cost"`
	Notes         *string             `json:"notes"`
	Status        *maintenance.Status `json:"status"`
}

type ListWorkOrdersResponse struct {
	WorkOrders []*WorkOrder `json:"work_orders"`
	Total      int          `json:"total"`
	Limit      int          `json:"limit"`
	Offset     int          `json:"offset"`
}
