package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/propdesk/propdesk/internal/api/middleware"
	"github.com/propdesk/propdesk/internal/core/workorder"
)

type WorkOrderHandler struct {
	workOrderService *workorder.Service
}

func NewWorkOrderHandler(workOrderService *workorder.Service) *WorkOrderHandler {
	return &WorkOrderHandler{workOrderService: workOrderService}
}

func (h *WorkOrderHandler) Create(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var req workorder.CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wo, err := h.workOrderService.Create(c.Request.Context(), companyID, requestID, &req)
	if err != nil {
		switch {
		case errors.Is(err, workorder.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "maintenance request not found"})
		case errors.Is(err, workorder.ErrContractorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "contractor not found"})
		case errors.Is(err, workorder.ErrNegativeCost):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, wo)
}

func (h *WorkOrderHandler) List(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	limit, offset := parsePagination(c)

	resp, err := h.workOrderService.List(c.Request.Context(), companyID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *WorkOrderHandler) ListByRequest(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	orders, err := h.workOrderService.ListByRequest(c.Request.Context(), companyID, requestID)
	if err != nil {
		if errors.Is(err, workorder.ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "maintenance request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"work_orders": orders})
}

func (h *WorkOrderHandler) Get(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work order id"})
		return
	}

	wo, err := h.workOrderService.Get(c.Request.Context(), companyID, id)
	if err != nil {
		if errors.Is(err, workorder.ErrNotFound) || errors.Is(err, workorder.ErrForbidden) {
			c.JSON(http.StatusNotFound, gin.H{"error": "work order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, wo)
}

func (h *WorkOrderHandler) Update(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work order id"})
		return
	}

	var req workorder.UpdateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wo, err := h.workOrderService.Update(c.Request.Context(), companyID, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, workorder.ErrNotFound), errors.Is(err, workorder.ErrForbidden):
			c.JSON(http.StatusNotFound, gin.H{"error": "work order not found"})
		case errors.Is(err, workorder.ErrContractorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "contractor not found"})
		case errors.Is(err, workorder.ErrNegativeCost), errors.Is(err, workorder.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, wo)
}

func (h *WorkOrderHandler) Delete(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work order id"})
		return
	}

	if err := h.workOrderService.Delete(c.Request.Context(), companyID, id); err != nil {
		if errors.Is(err, workorder.ErrNotFound) || errors.Is(err, workorder.ErrForbidden) {
			c.JSON(http.StatusNotFound, gin.H{"error": "work order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
