package middleware

import (
	"strings"

	"casos_backend/internal/logger"
	"casos_backend/pkg/apperrors"
	"casos_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// TokenVerifier проверяет токен и возвращает id пользователя
type TokenVerifier interface {
	VerifyToken(token string) (uint, error)
}

// AuthMiddleware - middleware проверки JWT
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, bearerPrefix) {
			apperrors.HandleError(c, apperrors.ErrMissingToken)
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenStr == "" {
			apperrors.HandleError(c, apperrors.ErrMissingToken)
			return
		}

		userID, err := verifier.VerifyToken(tokenStr)
		if err != nil {
			logger.CtxInfo(c.Request.Context(), "Rejected bearer token", "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set(contextkeys.UserIDKey, userID)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста (0, если его нет)
func GetUserID(c *gin.Context) uint {
	userID, exists := c.Get(contextkeys.UserIDKey)
	if !exists {
		return 0
	}

	id, ok := userID.(uint)
	if !ok {
		return 0
	}

	return id
}
