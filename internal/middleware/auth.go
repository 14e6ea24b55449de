package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"haramaya.com/pharmatrack/internal/repository"
	"haramaya.com/pharmatrack/pkg/response"
	"haramaya.com/pharmatrack/pkg/token"
)

type AuthMiddleware struct {
	userRepo repository.UserRepository
	issuer   *token.Issuer
}

func NewAuthMiddleware(userRepo repository.UserRepository, issuer *token.Issuer) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo: userRepo,
		issuer:   issuer,
	}
}

// RequireAuth verifies the bearer token and loads the user with roles on
// every request. Tokens are never revoked server-side, so a token may
// outlive its account; a missing or soft-deleted user answers 401 and a
// deactivated one 403.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, err := m.issuer.Verify(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(subject)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			c.Abort()
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			// Only a missing (or soft-deleted) user is an auth failure;
			// infrastructure errors stay 500s.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
			} else {
				response.Error(c, err)
			}
			c.Abort()
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"message": "Account deactivated"})
			c.Abort()
			return
		}

		c.Set(response.CtxUserIDKey, user.ID.String())
		c.Set(response.CtxUserRolesKey, user.RoleNames())
		c.Next()
	}
}

// RequireRoles allows the request when the caller holds at least one of the
// named roles. It assumes RequireAuth ran first; an absent identity is
// treated as unauthenticated.
func (m *AuthMiddleware) RequireRoles(required ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, err := response.GetUserRoles(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			c.Abort()
			return
		}

		for _, have := range roles {
			for _, want := range required {
				if have == want {
					c.Next()
					return
				}
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"message": fmt.Sprintf("Access denied. Required role: %s", strings.Join(required, " or ")),
		})
		c.Abort()
	}
}
