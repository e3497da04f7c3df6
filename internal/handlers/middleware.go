package handlers

import (
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/vocadrill/practice-service/internal/config"
)

// AuthMiddleware verifies the Casdoor-issued bearer token and stores the
// caller's user id in the gin context. Authentication itself lives in
// Casdoor; this service only checks signatures.
//
// Outside production a missing token falls back to the X-User-ID header so
// local development and integration tests can run without an identity
// provider.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		if header == "" && cfg.Environment != "production" {
			if devUser := c.GetHeader("X-User-ID"); devUser != "" {
				c.Set("user_id", devUser)
				c.Next()
				return
			}
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Missing bearer token",
				Code:    "unauthorized",
			})
			return
		}

		claims, err := casdoorsdk.ParseJwtToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid token",
				Code:    "unauthorized",
			})
			return
		}

		c.Set("user_id", claims.User.Id)
		c.Next()
	}
}

// currentUserID reads the authenticated user id set by AuthMiddleware,
// writing the 401 response itself when absent.
func currentUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
			Code:    "unauthorized",
		})
		return "", false
	}
	userID, ok := value.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
			Code:    "unauthorized",
		})
		return "", false
	}
	return userID, true
}
