package warranty

import (
	"time"

	"github.com/google/uuid"
)

// Warranty covers a property between StartDate and EndDate. The Status
// label is a persisted snapshot of the derived expiry band, refreshed by
// the nightly sweep; reads that need exact answers derive the band from
// the dates instead of trusting the label.
type Warranty struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   uuid.UUID `json:"company_id"`
	PropertyID  uuid.UUID `json:"property_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateWarrantyRequest struct {
	PropertyID  uuid.UUID `json:"property_id" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description *string   `json:"description"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
}

type UpdateWarrantyRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type ListWarrantiesResponse struct {
	Warranties []*Warranty `json:"warranties"`
	Total      int         `json:"total"`
	Limit      int         `json:"limit"`
	Offset     int         `json:"offset"`
}
