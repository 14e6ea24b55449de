package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"haramaya.com/pharmatrack/internal/dto"
	"haramaya.com/pharmatrack/internal/service"
	"haramaya.com/pharmatrack/pkg/response"
)

type SupplierHandler struct {
	service service.SupplierService
}

func NewSupplierHandler(service service.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: service}
}

func (h *SupplierHandler) GetAllSuppliers(c *gin.Context) {
	var filter dto.SupplierFilter
	if !bindQuery(c, &filter) {
		return
	}

	suppliers, meta, err := h.service.GetAllSuppliers(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": suppliers, "meta": meta})
}

func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	supplier, err := h.service.GetSupplier(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req dto.CreateSupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	supplier, err := h.service.CreateSupplier(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Supplier created successfully", "supplier": supplier})
}

func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateSupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	supplier, err := h.service.UpdateSupplier(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Supplier updated successfully", "supplier": supplier})
}

func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteSupplier(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted successfully"})
}
