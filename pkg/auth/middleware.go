package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mostafakamar/hafla-store/internal/adapter/api/dto"
	"github.com/mostafakamar/hafla-store/pkg/jwt"
)

// JWTAuthMiddleware creates a middleware that validates the Bearer token
// and stores the user claims in the request context
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Authentication required",
				"The Authorization header was not provided",
			))
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Invalid token format",
				"Use the format 'Bearer <token>'",
			))
			return
		}

		claims, err := jwt.ValidateToken(tokenParts[1])
		if err != nil {
			message := "Invalid token"
			if err == jwt.ErrExpiredToken {
				message = "Expired token"
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				message,
				err.Error(),
			))
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_name", claims.Name)
		c.Set("user_role", claims.Role)

		c.Next()
	}
}

// RoleAuthMiddleware creates a middleware that restricts a route to the
// given roles
func RoleAuthMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoleVal, exists := c.Get("user_role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Authentication required",
				"",
			))
			return
		}

		userRole, ok := userRoleVal.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
				http.StatusInternalServerError,
				"Type error",
				"Failed to read the user role",
			))
			return
		}

		authorized := false
		for _, r := range roles {
			if userRole == r {
				authorized = true
				break
			}
		}

		if !authorized {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				http.StatusForbidden,
				"Access denied",
				"You do not have permission to access this resource",
			))
			return
		}

		c.Next()
	}
}

// CurrentUser returns the authenticated user's id, name and role from the
// request context
func CurrentUser(c *gin.Context) (string, string, string) {
	userID := c.GetString("user_id")
	name := c.GetString("user_name")
	role := c.GetString("user_role")
	return userID, name, role
}
