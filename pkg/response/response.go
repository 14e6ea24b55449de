package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"haramaya.com/pharmatrack/pkg/apperror"
)

// Context keys set by the auth middleware.
const (
	CtxUserIDKey    = "user_id"
	CtxUserRolesKey = "user_roles"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(CtxUserIDKey)
	if !exists {
		return uuid.Nil, apperror.ErrUnauthenticated
	}

	userID, err := uuid.Parse(raw.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthenticated
	}

	return userID, nil
}

// GetUserRoles retrieves the role names resolved for the caller.
func GetUserRoles(c *gin.Context) ([]string, error) {
	raw, exists := c.Get(CtxUserRolesKey)
	if !exists {
		return nil, apperror.ErrUnauthenticated
	}

	roles, ok := raw.([]string)
	if !ok {
		return nil, apperror.ErrUnauthenticated
	}

	return roles, nil
}

// Error writes the standardized error body. Internal errors are logged with
// their cause but the client only ever sees the generic message.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		c.JSON(code, gin.H{"message": apperror.ErrInternal.Error()})
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		c.JSON(code, gin.H{"message": appErr.Message})
		return
	}

	c.JSON(code, gin.H{"message": err.Error()})
}

// ValidationError writes a 422 with per-field messages.
func ValidationError(c *gin.Context, fields map[string][]string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": "Validation failed",
		"errors":  fields,
	})
}
