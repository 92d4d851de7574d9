package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Helper to create test context
func createTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	return c, w
}

func TestIsSuperAdmin_True(t *testing.T) {
	c, _ := createTestContext()
	c.Set(ContextSuperAdmin, true)

	if !IsSuperAdmin(c) {
		t.Error("IsSuperAdmin should return true when context has is_super_admin=true")
	}
}

func TestIsSuperAdmin_NotSet(t *testing.T) {
	c, _ := createTestContext()

	if IsSuperAdmin(c) {
		t.Error("IsSuperAdmin should return false when context is not set")
	}
}

func TestIsSuperAdmin_InvalidType(t *testing.T) {
	c, _ := createTestContext()
	c.Set(ContextSuperAdmin, "invalid")

	if IsSuperAdmin(c) {
		t.Error("IsSuperAdmin should return false when context has invalid type")
	}
}

func TestGetUserID_Valid(t *testing.T) {
	c, _ := createTestContext()
	expectedID := uuid.New()
	c.Set(ContextUserID, expectedID)

	id, ok := GetUserID(c)
	if !ok {
		t.Error("GetUserID should return true when user_id is set")
	}
	if id != expectedID {
		t.Errorf("GetUserID returned %v, expected %v", id, expectedID)
	}
}

func TestGetUserID_NotSet(t *testing.T) {
	c, _ := createTestContext()

	_, ok := GetUserID(c)
	if ok {
		t.Error("GetUserID should return false when user_id is not set")
	}
}

func TestGetCompanyID_Valid(t *testing.T) {
	c, _ := createTestContext()
	expectedID := uuid.New()
	c.Set(ContextCompanyID, expectedID)

	id, ok := GetCompanyID(c)
	if !ok {
		t.Error("GetCompanyID should return true when company_id is set")
	}
	if id != expectedID {
		t.Errorf("GetCompanyID returned %v, expected %v", id, expectedID)
	}
}

func TestGetCompanyID_InvalidType(t *testing.T) {
	c, _ := createTestContext()
	c.Set(ContextCompanyID, "not-a-uuid")

	_, ok := GetCompanyID(c)
	if ok {
		t.Error("GetCompanyID should return false when company_id has invalid type")
	}
}

func TestGetPermissions_Valid(t *testing.T) {
	c, _ := createTestContext()
	expectedPerms := []string{"property:read", "property:write"}
	c.Set(ContextPermissions, expectedPerms)

	perms := GetPermissions(c)
	if len(perms) != len(expectedPerms) {
		t.Errorf("GetPermissions returned %d permissions, expected %d", len(perms), len(expectedPerms))
	}
}

func TestGetPermissions_NotSet(t *testing.T) {
	c, _ := createTestContext()

	perms := GetPermissions(c)
	if perms != nil {
		t.Error("GetPermissions should return nil when not set")
	}
}

func TestGetPermissions_InvalidType(t *testing.T) {
	c, _ := createTestContext()
	c.Set(ContextPermissions, "invalid")

	perms := GetPermissions(c)
	if perms != nil {
		t.Error("GetPermissions should return nil when invalid type")
	}
}

func TestRequireSuperAdmin_BlocksRegularUser(t *testing.T) {
	c, w := createTestContext()

	m := &AuthMiddleware{}
	m.RequireSuperAdmin()(c)

	if w.Code != http.StatusForbidden {
		t.Errorf("regular user should be blocked, got status %d", w.Code)
	}
}

func TestRequireSuperAdmin_AllowsSuperAdmin(t *testing.T) {
	c, w := createTestContext()
	c.Set(ContextSuperAdmin, true)

	m := &AuthMiddleware{}
	m.RequireSuperAdmin()(c)

	if w.Code == http.StatusForbidden {
		t.Error("super admin should be allowed")
	}
}

func TestRequirePermission_HasPermission(t *testing.T) {
	c, w := createTestContext()
	c.Set(ContextPermissions, []string{"warranty:read", "warranty:write"})

	m := &AuthMiddleware{}
	m.RequirePermission("warranty:read")(c)

	if c.IsAborted() {
		t.Errorf("user with the permission should pass, got status %d", w.Code)
	}
}

func TestRequirePermission_LacksPermission(t *testing.T) {
	c, w := createTestContext()
	c.Set(ContextPermissions, []string{"warranty:read"})

	m := &AuthMiddleware{}
	m.RequirePermission("warranty:write")(c)

	if w.Code != http.StatusForbidden {
		t.Errorf("user without the permission should be blocked, got status %d", w.Code)
	}
}

func TestRequirePermission_NoPermissionsSet(t *testing.T) {
	c, w := createTestContext()

	m := &AuthMiddleware{}
	m.RequirePermission("property:read")(c)

	if w.Code != http.StatusForbidden {
		t.Errorf("request without permissions should be blocked, got status %d", w.Code)
	}
}

func TestRequireCompany_ExtractsFromHeader(t *testing.T) {
	c, _ := createTestContext()
	companyID := uuid.New()
	c.Request.Header.Set("X-Company-ID", companyID.String())

	companyIDStr := c.GetHeader("X-Company-ID")
	parsedID, err := uuid.Parse(companyIDStr)
	if err != nil {
		t.Errorf("failed to parse company ID from header: %v", err)
	}
	if parsedID != companyID {
		t.Errorf("parsed company ID %v doesn't match expected %v", parsedID, companyID)
	}
}

func TestContextConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		want     string
	}{
		{"ContextUserID", ContextUserID, "user_id"},
		{"ContextCompanyID", ContextCompanyID, "company_id"},
		{"ContextPermissions", ContextPermissions, "permissions"},
		{"ContextSuperAdmin", ContextSuperAdmin, "is_super_admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.want {
				t.Errorf("got %q, want %q", tt.constant, tt.want)
			}
		})
	}
}
