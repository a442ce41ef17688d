package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pharmaflow/pharma_returns_app/internal/core/ports/services"
)

// ReviewerRequired creates a Gin middleware that restricts a route to users
// with reviewer privileges. It must run after authentication so the user ID
// is available in the context.
func ReviewerRequired(userSvc services.UserReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			logger.Warn("Reviewer check without authenticated user")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		user, err := userSvc.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			logger.Warn("Failed to load user for reviewer check", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		if !user.CanReview() {
			logger.Warn("Non-reviewer attempted reviewer action", "user_id", userID)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Reviewer role required"})
			return
		}

		c.Next()
	}
}
