package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/propdesk/propdesk/internal/api/middleware"
	"github.com/propdesk/propdesk/internal/core/contractor"
)

type ContractorHandler struct {
	contractorService *contractor.Service
}

func NewContractorHandler(contractorService *contractor.Service) *ContractorHandler {
	return &ContractorHandler{contractorService: contractorService}
}

func (h *ContractorHandler) Create(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	var req contractor.CreateContractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ct, err := h.contractorService.Create(c.Request.Context(), companyID, &req)
	if err != nil {
		if errors.Is(err, contractor.ErrInvalidRate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ct)
}

func (h *ContractorHandler) List(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	limit, offset := parsePagination(c)

	resp, err := h.contractorService.List(c.Request.Context(), companyID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ContractorHandler) Get(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contractor id"})
		return
	}

	ct, err := h.contractorService.Get(c.Request.Context(), companyID, id)
	if err != nil {
		if errors.Is(err, contractor.ErrNotFound) || errors.Is(err, contractor.ErrForbidden) {
			c.JSON(http.StatusNotFound, gin.H{"error": "contractor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ct)
}

func (h *ContractorHandler) Update(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contractor id"})
		return
	}

	var req contractor.UpdateContractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ct, err := h.contractorService.Update(c.Request.Context(), companyID, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, contractor.ErrNotFound), errors.Is(err, contractor.ErrForbidden):
			c.JSON(http.StatusNotFound, gin.H{"error": "contractor not found"})
		case errors.Is(err, contractor.ErrInvalidRate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, ct)
}

func (h *ContractorHandler) Delete(c *gin.Context) {
	companyID, ok := middleware.GetCompanyID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company id required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contractor id"})
		return
	}

	if err := h.contractorService.Delete(c.Request.Context(), companyID, id); err != nil {
		if errors.Is(err, contractor.ErrNotFound) || errors.Is(err, contractor.ErrForbidden) {
			c.JSON(http.StatusNotFound, gin.H{"error": "contractor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
