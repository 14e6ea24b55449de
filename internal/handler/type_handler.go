package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"haramaya.com/pharmatrack/internal/dto"
	"haramaya.com/pharmatrack/internal/service"
	"haramaya.com/pharmatrack/pkg/response"
)

type TypeHandler struct {
	service service.TypeService
}

func NewTypeHandler(service service.TypeService) *TypeHandler {
	return &TypeHandler{service: service}
}

func (h *TypeHandler) GetAllTypes(c *gin.Context) {
	var filter dto.ListQuery
	if !bindQuery(c, &filter) {
		return
	}

	types, meta, err := h.service.GetAllTypes(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": types, "meta": meta})
}

func (h *TypeHandler) GetType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	medType, err := h.service.GetType(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, medType)
}

func (h *TypeHandler) CreateType(c *gin.Context) {
	var req dto.CreateTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	medType, err := h.service.CreateType(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Type created successfully", "type": medType})
}

func (h *TypeHandler) UpdateType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	medType, err := h.service.UpdateType(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Type updated successfully", "type": medType})
}

func (h *TypeHandler) DeleteType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteType(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Type deleted successfully"})
}
