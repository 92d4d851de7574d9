package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/propdesk/propdesk/internal/api/middleware"
	"github.com/propdesk/propdesk/internal/core/report"
)

type DashboardHandler struct {
	reportService *report.Service
}

func NewDashboardHandler(reportService *report.Service) *DashboardHandler {
	return &DashboardHandler{reportService: reportService}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	summary, err := h.reportService.Dashboard(c.Request.Context(), companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *DashboardHandler) Expenses(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	rep, err := h.reportService.Expenses(c.Request.Context(), companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rep)
}
