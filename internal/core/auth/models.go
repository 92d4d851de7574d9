package auth

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                   uuid.UUID  `json:"id"`
	Email                string     `json:"email"`
	PasswordHash         string     `json:"-"`
	Name                 string     `json:"name"`
	Status               string     `json:"status"`
	IsSuperAdmin         bool       `json:"is_super_admin"`
	SuperAdminPromotedAt *time.Time `json:"super_admin_promoted_at,omitempty"`
	SuperAdminPromotedBy *uuid.UUID `json:"super_admin_promoted_by,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

// Company is the tenant boundary: every property, request, work order,
// contractor and warranty belongs to exactly one company.
type Company struct {
	ID        uuid.UUID              `json:"id"`
	Name      string                 `json:"name"`
	Slug      string                 `json:"slug"`
	Settings  map[string]interface{} `json:"settings"`
	CreatedAt time.Time              `json:"created_at"`
}

type Role struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   uuid.UUID `json:"company_id"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}

type CompanyMembership struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	UserID    uuid.UUID `json:"user_id"`
	RoleID    uuid.UUID `json:"role_id"`
	CreatedAt time.Time `json:"created_at"`
}

type APIKey struct {
	ID          uuid.UUID  `json:"id"`
	CompanyID   uuid.UUID  `json:"company_id"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	Name        string     `json:"name"`
	KeyHash     string     `json:"-"`
	Permissions []string   `json:"permissions"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Request/Response types
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type CreateCompanyRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

type InviteMemberRequest struct {
	Email  string `json:"email" binding:"required,email"`
	RoleID string `json:"role_id" binding:"required"`
}

type CreateAPIKeyRequest struct {
	Name        string   `json:"name" binding:"required"`
	Permissions []string `json:"permissions"`
	ExpiresAt   *string  `json:"expires_at"`
}

type CreateAPIKeyResponse struct {
	APIKey *APIKey `json:"api_key"`
	Key    string  `json:"key"`
}

type AuditLog struct {
	ID           uuid.UUID      `json:"id"`
	CompanyID    *uuid.UUID     `json:"company_id,omitempty"`
	UserID       *uuid.UUID     `json:"user_id,omitempty"`
	ActorType    string         `json:"actor_type"`
	EntityType   string         `json:"entity_type"`
	EntityID     string         `json:"entity_id"`
	Action       string         `json:"action"`
	OldData      map[string]any `json:"old_data,omitempty"`
	NewData      map[string]any `json:"new_data,omitempty"`
	IPAddress    *string        `json:"ip_address,omitempty"`
	UserAgent    *string        `json:"user_agent,omitempty"`
	ResultStatus *string        `json:"result_status,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Permission constants
const (
	PermCompanyManage   = "company:manage"
	PermPropertyRead    = "property:read"
	PermPropertyWrite   = "property:write"
	PermPropertyDelete  = "property:delete"
	PermRequestRead     = "request:read"
	PermRequestWrite    = "request:write"
	PermRequestDelete   = "request:delete"
	PermWorkOrderRead   = "workorder:read"
	PermWorkOrderWrite  = "workorder:write"
	PermWorkOrderDelete = "workorder:delete"
	PermContractorRead  = "contractor:read"
	PermContractorWrite = "contractor:write"
	PermWarrantyRead    = "warranty:read"
	PermWarrantyWrite   = "warranty:write"
	PermReportRead      = "report:read"
	PermInsightRun      = "insight:run"
)

var AllPermissions = []string{
	PermCompanyManage,
	PermPropertyRead, PermPropertyWrite, PermPropertyDelete,
	PermRequestRead, PermRequestWrite, PermRequestDelete,
	PermWorkOrderRead, PermWorkOrderWrite, PermWorkOrderDelete,
	PermContractorRead, PermContractorWrite,
	PermWarrantyRead, PermWarrantyWrite,
	PermReportRead, PermInsightRun,
}

var AdminPermissions = append([]string{}, AllPermissions...)

var ManagerPermissions = []string{
	PermPropertyRead, PermPropertyWrite,
	PermRequestRead, PermRequestWrite,
	PermWorkOrderRead, PermWorkOrderWrite,
	PermContractorRead, PermContractorWrite,
	PermWarrantyRead, PermWarrantyWrite,
	PermReportRead, PermInsightRun,
}

var ViewerPermissions = []string{
	PermPropertyRead,
	PermRequestRead,
	PermWorkOrderRead,
	PermContractorRead,
	PermWarrantyRead,
	PermReportRead,
}
