package middleware

import (
	"strings"

	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/pkg/apperrors"
	"jobportal_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware - middleware проверки JWT
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			logger.CtxDebug(c.Request.Context(), "Rejected access token", "error", err)
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		// Сохраняем claims в контекст
		c.Set(contextkeys.UserIDKey, claims.UserID)
		c.Set(contextkeys.UserTypeKey, models.UserType(claims.UserType))
		c.Set(contextkeys.EmailKey, claims.Email)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		ctx = logger.WithUserType(ctx, claims.UserType)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireUserType - доступ только для одного типа аккаунта
func RequireUserType(required models.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		userType := GetUserType(c)
		if userType == "" {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: no user type"))
			return
		}
		if userType != required {
			apperrors.HandleError(c, apperrors.ErrWrongUserType)
			return
		}
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	return c.GetString(contextkeys.UserIDKey)
}

// GetEmail - email из access-токена
func GetEmail(c *gin.Context) string {
	return c.GetString(contextkeys.EmailKey)
}

// GetUserType извлекает тип аккаунта из контекста
func GetUserType(c *gin.Context) models.UserType {
	val, exists := c.Get(contextkeys.UserTypeKey)
	if !exists {
		return ""
	}
	switch t := val.(type) {
	case models.UserType:
		return t
	case string:
		return models.UserType(t)
	}
	return ""
}
