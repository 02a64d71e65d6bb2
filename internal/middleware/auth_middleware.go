package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/blog-back-end/internal/models"
	"github.com/qasemB/blog-back-end/internal/repository"
	"github.com/qasemB/blog-back-end/internal/utils"
)

// Context keys set by Authenticate.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxUserRole = "user_role"
	CtxClaims   = "claims"
)

// Authenticate verifies the Bearer token and attaches the caller's identity
// to the request context. A missing token is 401; a bad token is 403. The
// claims are re-checked against the store because a token outlives the
// deletion of its account until expiry.
func Authenticate(jwtSecret string, userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Access token is required",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid authorization format. Use: Bearer <token>",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"message": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(claims.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Failed to resolve user",
				"error":   err.Error(),
			})
			c.Abort()
			return
		}
		if user == nil {
			// Token is signed and unexpired but the account is gone.
			c.JSON(http.StatusForbidden, gin.H{
				"message": "User no longer exists",
			})
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxUserRole, claims.Role)
		c.Set(CtxClaims, claims)

		c.Next()
	}
}

// RequireAdmin allows the request through only when Authenticate has
// attached the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(CtxUserRole)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		if role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"message": "Admin access required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
