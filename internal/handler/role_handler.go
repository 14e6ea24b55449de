package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"haramaya.com/pharmatrack/internal/service"
	"haramaya.com/pharmatrack/pkg/response"
)

type RoleHandler struct {
	service service.RoleService
}

func NewRoleHandler(service service.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

func (h *RoleHandler) GetAllRoles(c *gin.Context) {
	roles, err := h.service.GetAllRoles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": roles})
}
