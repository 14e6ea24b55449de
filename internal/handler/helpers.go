package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorlib "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"haramaya.com/pharmatrack/pkg/response"
	"haramaya.com/pharmatrack/pkg/validator"
)

// bindJSON binds and validates a JSON body. Field validation failures answer
// 422 with per-field messages; anything else (malformed JSON, wrong types)
// answers 400.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var validationErrors validatorlib.ValidationErrors
		if errors.As(err, &validationErrors) {
			response.ValidationError(c, validator.FormatValidationErrors(err))
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		}
		return false
	}
	return true
}

func bindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		var validationErrors validatorlib.ValidationErrors
		if errors.As(err, &validationErrors) {
			response.ValidationError(c, validator.FormatValidationErrors(err))
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid query parameters"})
		}
		return false
	}
	return true
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID format"})
		return uuid.Nil, false
	}
	return id, true
}
