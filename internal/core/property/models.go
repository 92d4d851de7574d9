package property

import (
	"time"

	"github.com/google/uuid"
)

type Property struct {
	ID         uuid.UUID `json:"id"`
	CompanyID  uuid.UUID `json:"company_id"`
	Title      string    `json:"title"`
	Address    string    `json:"address"`
	OwnerName  *string   `json:"owner_name,omitempty"`
	OwnerEmail *string   `json:"owner_email,omitempty"`
	OwnerPhone *string   `json:"owner_phone,omitempty"`
	// ContractAddress is written by an external deployment flow and treated
	// as an opaque string; it is never parsed or validated here.
	ContractAddress *string   `json:"contract_address,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreatePropertyRequest struct {
	Title      string  `json:"title" binding:"required"`
	Address    string  `json:"address" binding:"required"`
	OwnerName  *string `json:"owner_name"`
	OwnerEmail *string `json:"owner_email"`
	OwnerPhone *string `json:"owner_phone"`
}

type UpdatePropertyRequest struct {
	Title           *string `json:"title"`
	Address         *string `json:"address"`
	OwnerName       *string `json:"owner_name"`
	OwnerEmail      *string `json:"owner_email"`
	OwnerPhone      *string `json:"owner_phone"`
	ContractAddress *string `json:"contract_address"`
}

type ListPropertiesResponse struct {
	Properties []*Property `json:"properties"`
	Total      int         `json:"total"`
	Limit      int         `json:"limit"`
	Offset     int         `json:"offset"`
}
