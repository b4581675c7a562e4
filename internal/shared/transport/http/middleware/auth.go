package middleware

import (
	nethttp "net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"IdleConquest/internal/shared/security"
	"IdleConquest/internal/shared/transport"
)

const CtxKeyUID = "auth_uid"

// JWTAuth 校验 Authorization: Bearer <token>，通过后把 uid 放进 gin 上下文。
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		token := strings.TrimPrefix(raw, "Bearer ")
		if raw == "" || token == raw || token == "" {
			abortUnauthorized(c, "缺少访问令牌")
			return
		}

		_, claims, err := security.ParseToken(token)
		if err != nil {
			abortUnauthorized(c, "访问令牌无效或已过期")
			return
		}

		c.Set(CtxKeyUID, claims.Uid)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(nethttp.StatusUnauthorized, gin.H{
		"code": transport.Unauthorized,
		"msg":  msg,
	})
}
