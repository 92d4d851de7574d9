package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/propdesk/propdesk/internal/ai"
	"github.com/propdesk/propdesk/internal/api/middleware"
	"github.com/propdesk/propdesk/internal/core/property"
	"github.com/propdesk/propdesk/internal/core/report"
)

// InsightsHandler serves AI-generated briefings. The AI client may be nil
// when no API key is configured; the endpoints then report the feature as
// unavailable instead of failing at startup.
type InsightsHandler struct {
	reportService   *report.Service
	propertyService *property.Service
	aiClient        *ai.Client
}

func NewInsightsHandler(reportService *report.Service, propertyService *property.Service, aiClient *ai.Client) *InsightsHandler {
	return &InsightsHandler{reportService: reportService, propertyService: propertyService, aiClient: aiClient}
}

func (h *InsightsHandler) Dashboard(c *gin.Context) {
	if h.aiClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "insights are not configured"})
		return
	}

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

	text, err := h.aiClient.DashboardInsights(c.Request.Context(), summary)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"insights": text})
}

func (h *InsightsHandler) Expenses(c *gin.Context) {
	if h.aiClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "insights are not configured"})
		return
	}

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

	text, err := h.aiClient.ExpenseInsights(c.Request.Context(), rep)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"insights": text})
}

func (h *InsightsHandler) Property(c *gin.Context) {
	if h.aiClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "insights are not configured"})
		return
	}

	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}

	if _, err := h.propertyService.Get(c.Request.Context(), companyID, propertyID); err != nil {
		if errors.Is(err, property.ErrNotFound) || errors.Is(err, property.ErrForbidden) {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	overview, err := h.reportService.PropertyOverview(c.Request.Context(), companyID, propertyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	text, err := h.aiClient.PropertyInsights(c.Request.Context(), overview)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"insights": text})
}
