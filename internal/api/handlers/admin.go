package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/propdesk/propdesk/internal/api/middleware"
	"github.com/propdesk/propdesk/internal/core/auth"
)

type AdminHandler struct {
	authService *auth.Service
}

func NewAdminHandler(authService *auth.Service) *AdminHandler {
	return &AdminHandler{authService: authService}
}

func parseAdminPagination(c *gin.Context, maxLimit int) (int, int) {
	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= maxLimit {
			limit = parsed
		}
	}

	offset := 0
	if o := c.Query("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	return limit, offset
}

// ListCompanies returns all companies in the system (super admin only)
func (h *AdminHandler) ListCompanies(c *gin.Context) {
	limit, offset := parseAdminPagination(c, 1000)

	companies, err := h.authService.GetAllCompanies(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"companies": companies,
		"limit":     limit,
		"offset":    offset,
	})
}

// GetCompanyDetail returns details for a specific company (super admin only)
func (h *AdminHandler) GetCompanyDetail(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("companyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}

	company, err := h.authService.GetCompany(c.Request.Context(), companyID)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, company)
}

// ListUsers returns all users in the system with pagination (super admin only)
func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, offset := parseAdminPagination(c, 500)

	users, err := h.authService.GetAllUsers(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":  users,
		"limit":  limit,
		"offset": offset,
	})
}

// UpdateUser updates a user's information (super admin only)
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Status != "" {
		if req.Status != "active" && req.Status != "deleted" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value, must be 'active' or 'deleted'"})
			return
		}
		user.Status = req.Status
	}

	if err := h.authService.UpdateUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// PromoteUser promotes a user to super admin (super admin only)
func (h *AdminHandler) PromoteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user id"})
		return
	}

	user, err := h.authService.PromoteToSuperAdmin(c.Request.Context(), actorID, userID)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "only super admins can promote users"})
		case errors.Is(err, auth.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, auth.ErrAlreadySuperAdmin):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	h.recordAdminAction(c, "user", userID.String(), "promote_super_admin")

	c.JSON(http.StatusOK, user)
}

// DemoteUser demotes a user from super admin (super admin only)
func (h *AdminHandler) DemoteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user id"})
		return
	}

	user, err := h.authService.DemoteFromSuperAdmin(c.Request.Context(), actorID, userID)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "only super admins can demote users"})
		case errors.Is(err, auth.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, auth.ErrNotSuperAdmin):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrLastSuperAdmin):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	h.recordAdminAction(c, "user", userID.String(), "demote_super_admin")

	c.JSON(http.StatusOK, user)
}

// QueryAuditLogs returns recent audit log entries (super admin only)
func (h *AdminHandler) QueryAuditLogs(c *gin.Context) {
	limit, offset := parseAdminPagination(c, 500)

	logs, err := h.authService.GetAuditLogs(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":   logs,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *AdminHandler) recordAdminAction(c *gin.Context, entityType, entityID, action string) {
	actorID, _ := middleware.GetUserID(c)

	entry := &auth.AuditLog{
		UserID:     &actorID,
		ActorType:  "user",
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
	}
	if ip := middleware.GetIPAddress(c); ip != "" {
		entry.IPAddress = &ip
	}
	if ua := middleware.GetUserAgent(c); ua != "" {
		entry.UserAgent = &ua
	}

	// Audit failures never block the response.
	_ = h.authService.RecordAuditLog(c.Request.Context(), entry)
}

type UpdateUserRequest struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}
