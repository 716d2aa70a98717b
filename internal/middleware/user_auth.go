package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"classboard/internal/constants"
	"classboard/internal/model"
)

// TokenVerifier 会话Token校验接口，由UserService实现
type TokenVerifier interface {
	GetByToken(ctx context.Context, token string) (*model.User, error)
}

// 上下文键
const (
	ContextUserKey   = "user"
	ContextUserIDKey = "user_id"
)

// UserAuth 用户认证中间件：Authorization头中的Token必须对应有效会话
func UserAuth(users TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusOK, gin.H{"code": 401, "msg": constants.ErrUnauthorized})
			c.Abort()
			return
		}

		user, err := users.GetByToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"code": 401, "msg": constants.ErrInvalidToken})
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Next()
	}
}

// AdminAuth 管理员认证中间件：在用户认证之上要求管理员用户组
func AdminAuth(users TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		user, err := users.GetByToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"code": 401, "msg": constants.ErrInvalidToken})
			c.Abort()
			return
		}

		if !user.IsAdmin() {
			c.JSON(http.StatusOK, gin.H{"code": 403, "msg": constants.ErrInsufficientPermission})
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Next()
	}
}
