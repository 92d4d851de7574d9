package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/propdesk/propdesk/internal/api/middleware"
	"github.com/propdesk/propdesk/internal/core/stats"
	"github.com/propdesk/propdesk/internal/core/warranty"
)

type WarrantyHandler struct {
	warrantyService *warranty.Service

	now func() time.Time
}

func NewWarrantyHandler(warrantyService *warranty.Service) *WarrantyHandler {
	return &WarrantyHandler{warrantyService: warrantyService, now: time.Now}
}

// warrantyView decorates a warranty with its derived expiry band so
// clients never rely on the stored label being fresh.
type warrantyView struct {
	*warranty.Warranty
	ExpiryStatus  stats.ExpiryStatus `json:"expiry_status"`
	DaysRemaining int                `json:"days_remaining"`
	Warning       string             `json:"warning,omitempty"`
}

func (h *WarrantyHandler) decorate(w *warranty.Warranty) warrantyView {
	now := h.now()
	view := warrantyView{Warranty: w}

	band, err := stats.WarrantyExpiry(w, now)
	if err != nil {
		view.Warning = err.Error()
		return view
	}
	view.ExpiryStatus = band
	view.DaysRemaining = stats.DaysUntilExpiry(w, now)
	return view
}

func (h *WarrantyHandler) Create(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	var req warranty.CreateWarrantyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := h.warrantyService.Create(c.Request.Context(), companyID, &req)
	if err != nil {
		switch {
		case errors.Is(err, warranty.ErrPropertyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		case errors.Is(err, warranty.ErrInvalidPeriod):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, h.decorate(w))
}

func (h *WarrantyHandler) List(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	limit, offset := parsePagination(c)

	resp, err := h.warrantyService.List(c.Request.Context(), companyID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	views := make([]warrantyView, 0, len(resp.Warranties))
	for _, w := range resp.Warranties {
		views = append(views, h.decorate(w))
	}

	c.JSON(http.StatusOK, gin.H{
		"warranties": views,
		"total":      resp.Total,
		"limit":      resp.Limit,
		"offset":     resp.Offset,
	})
}

func (h *WarrantyHandler) ListByProperty(c *gin.Context) {
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

	warranties, err := h.warrantyService.ListByProperty(c.Request.Context(), companyID, propertyID)
	if err != nil {
		if errors.Is(err, warranty.ErrPropertyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	views := make([]warrantyView, 0, len(warranties))
	for _, w := range warranties {
		views = append(views, h.decorate(w))
	}

	c.JSON(http.StatusOK, gin.H{"warranties": views})
}

func (h *WarrantyHandler) Get(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid warranty id"})
		return
	}

	w, err := h.warrantyService.Get(c.Request.Context(), companyID, id)
	if err != nil {
		if errors.Is(err, warranty.ErrNotFound) || errors.Is(err, warranty.ErrForbidden) {
			c.JSON(http.StatusNotFound, gin.H{"error": "warranty not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.decorate(w))
}

func (h *WarrantyHandler) Update(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid warranty id"})
		return
	}

	var req warranty.UpdateWarrantyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := h.warrantyService.Update(c.Request.Context(), companyID, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, warranty.ErrNotFound), errors.Is(err, warranty.ErrForbidden):
			c.JSON(http.StatusNotFound, gin.H{"error": "warranty not found"})
		case errors.Is(err, warranty.ErrInvalidPeriod):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, h.decorate(w))
}

func (h *WarrantyHandler) Delete(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid warranty id"})
		return
	}

	if err := h.warrantyService.Delete(c.Request.Context(), companyID, id); err != nil {
		if errors.Is(err, warranty.ErrNotFound) || errors.Is(err, warranty.ErrForbidden) {
			c.JSON(http.StatusNotFound, gin.H{"error": "warranty not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
