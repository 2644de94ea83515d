package middleware

import (
	"strings"

	apperrors "travel-app/errors"
	"travel-app/response"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// TokenParser lấy userID từ bearer token
type TokenParser interface {
	GetUserIDFromToken(token string) (uint, error)
}

// AuthMiddleware xử lý authentication
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.FromError(c, apperrors.ErrMissingToken)
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		userID, err := tokens.GetUserIDFromToken(tokenString)
		if err != nil {
			response.FromError(c, err)
			return
		}

		// Lưu thông tin user vào context
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CurrentUserID trả về userID đã được AuthMiddleware gán
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// ErrorHandler xử lý lỗi được đẩy vào c.Errors mà handler chưa trả response
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		if apperrors.IsAppError(err) {
			response.FromError(c, err)
			return
		}
		response.ServerError(c)
	}
}
