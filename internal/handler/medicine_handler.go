package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"haramaya.com/pharmatrack/internal/dto"
	"haramaya.com/pharmatrack/internal/service"
	"haramaya.com/pharmatrack/pkg/response"
)

type MedicineHandler struct {
	service service.MedicineService
}

func NewMedicineHandler(service service.MedicineService) *MedicineHandler {
	return &MedicineHandler{service: service}
}

func (h *MedicineHandler) GetAllMedicines(c *gin.Context) {
	var filter dto.MedicineFilter
	if !bindQuery(c, &filter) {
		return
	}

	medicines, meta, err := h.service.GetAllMedicines(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": medicines, "meta": meta})
}

func (h *MedicineHandler) SearchMedicines(c *gin.Context) {
	var query dto.MedicineSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Search query must be at least 2 characters"})
		return
	}

	medicines, err := h.service.SearchMedicines(c.Request.Context(), query.Query)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": medicines})
}

func (h *MedicineHandler) GetLowStockMedicines(c *gin.Context) {
	medicines, err := h.service.GetLowStockMedicines(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": medicines})
}

func (h *MedicineHandler) GetMedicine(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	medicine, err := h.service.GetMedicine(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, medicine)
}

func (h *MedicineHandler) CreateMedicine(c *gin.Context) {
	var req dto.CreateMedicineRequest
	if !bindJSON(c, &req) {
		return
	}

	medicine, err := h.service.CreateMedicine(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Medicine created successfully", "medicine": medicine})
}

func (h *MedicineHandler) UpdateMedicine(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateMedicineRequest
	if !bindJSON(c, &req) {
		return
	}

	medicine, err := h.service.UpdateMedicine(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Medicine updated successfully", "medicine": medicine})
}

func (h *MedicineHandler) DeleteMedicine(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteMedicine(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Medicine deleted successfully"})
}
