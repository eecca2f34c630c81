package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userRepo "matrimonial/database/repository/user"
	"matrimonial/models"
	"matrimonial/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionLoader resolves the signed-in user behind a token subject.
type SessionLoader interface {
	Load(ctx context.Context, userID string) (models.SessionUser, error)
}

// JWTAuthUserMiddleware validates the bearer token and loads the session user.
func JWTAuthUserMiddleware(loader SessionLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Authorization header required"})
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || strings.TrimSpace(tokenString) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Authorization header must be a Bearer token"})
			return
		}

		userID, err := utils.ExtractIDFromToken(strings.TrimSpace(tokenString))
		if err != nil {
			logger.Debug("JWT validation failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		user, err := loader.Load(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Account not found"})
				return
			}
			logger.Error("Failed to load session user", zap.String("userID", userID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "Could not verify your session"})
			return
		}

		c.Set(utils.ContextUserID, user.ID)
		c.Set(utils.ContextSessionUser, user)
		c.Next()
	}
}
