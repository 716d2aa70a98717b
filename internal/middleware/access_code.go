package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"classboard/internal/constants"
)

// AccessCode 静态访问口令中间件，内容管理接口在账号认证之外的
// 第二道独立门禁。口令来自配置，随请求头明文传输，不构成安全边界，
// 与账号体系互不耦合。配置为空时该门禁关闭。
func AccessCode(code string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if code == "" {
			c.Next()
			return
		}

		got := c.GetHeader("X-Access-Code")
		if got == "" {
			c.JSON(http.StatusOK, gin.H{"code": 401, "msg": constants.ErrAccessCodeRequired})
			c.Abort()
			return
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(code)) != 1 {
			c.JSON(http.StatusOK, gin.H{"code": 403, "msg": constants.ErrAccessCodeIncorrect})
			c.Abort()
			return
		}

		c.Next()
	}
}
