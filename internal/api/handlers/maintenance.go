package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/propdesk/propdesk/internal/api/middleware"
	"github.com/propdesk/propdesk/internal/core/maintenance"
)

type MaintenanceHandler struct {
	maintenanceService *maintenance.Service
}

func NewMaintenanceHandler(maintenanceService *maintenance.Service) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

func (h *MaintenanceHandler) Create(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input maintenance.CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.maintenanceService.Create(c.Request.Context(), companyID, userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, maintenance.ErrPropertyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		case errors.Is(err, maintenance.ErrInvalidPriority):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, req)
}

func (h *MaintenanceHandler) List(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	limit, offset := parsePagination(c)

	resp, err := h.maintenanceService.List(c.Request.Context(), companyID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *MaintenanceHandler) Get(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	req, err := h.maintenanceService.Get(c.Request.Context(), companyID, id)
	if err != nil {
		if errors.Is(err, maintenance.ErrNotFound) || errors.Is(err, maintenance.ErrForbidden) {
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, req)
}

func (h *MaintenanceHandler) Update(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var input maintenance.UpdateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.maintenanceService.Update(c.Request.Context(), companyID, id, &input)
	if err != nil {
		switch {
		case errors.Is(err, maintenance.ErrNotFound), errors.Is(err, maintenance.ErrForbidden):
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		case errors.Is(err, maintenance.ErrInvalidPriority):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, req)
}

// UpdateStatus moves a request through its lifecycle. Completed and
// cancelled are terminal.
func (h *MaintenanceHandler) UpdateStatus(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var input maintenance.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.maintenanceService.UpdateStatus(c.Request.Context(), companyID, id, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, maintenance.ErrNotFound), errors.Is(err, maintenance.ErrForbidden):
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		case errors.Is(err, maintenance.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, maintenance.ErrTerminalStatus):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, req)
}

func (h *MaintenanceHandler) Delete(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	if err := h.maintenanceService.Delete(c.Request.Context(), companyID, id); err != nil {
		if errors.Is(err, maintenance.ErrNotFound) || errors.Is(err, maintenance.ErrForbidden) {
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
