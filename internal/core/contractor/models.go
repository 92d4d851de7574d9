package contractor

import (
	"time"

	"github.com/google/uuid"
)

type Contractor struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   uuid.UUID `json:"company_id"`
	Name        string    `json:"name"`
	CompanyName *string   `json:"company_name,omitempty"`
	Email       string    `json:"email"`
	Phone       *string   `json:"phone,omitempty"`
	Specialties []string  `json:"specialties"`
	HourlyRate  *float64  `json:"hourly_rate,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateContractorRequest struct {
	Name        string   `json:"name" binding:"required"`
	CompanyName *string  `json:"company_name"`
	Email       string   `json:"email" binding:"required,email"`
	Phone       *string  `json:"phone"`
	Specialties []string `json:"specialties"`
	HourlyRate  *float64 `json:"hourly_rate"`
}

type UpdateContractorRequest struct {
	Name        *string  `json:"name"`
	CompanyName *string  `json:"company_name"`
	Email       *string  `json:"email"`
	Phone       *string  `json:"phone"`
	Specialties []string `json:"specialties"`
	HourlyRate  *float64 `json:"hourly_rate"`
}

type ListContractorsResponse struct {
	Contractors []*Contractor `json:"contractors"`
	Total       int           `json:"total"`
	Limit       int           `json:"limit"`
	Offset      int           `json:"offset"`
}
