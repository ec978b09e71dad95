package middleware

import (
	"Neuron/internal/api/config"
	"Neuron/internal/api/dto"
	"Neuron/internal/pkg/security"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyMiddleware 校验 X-API-Key 请求头，配置里只存 bcrypt 哈希
func APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Response{
				Code:    http.StatusUnauthorized,
				Message: "missing api key",
			})
			return
		}
		if err := security.CheckAPIKey(key, config.Cfg.API.KeyHash); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Response{
				Code:    http.StatusUnauthorized,
				Message: "invalid api key",
			})
			return
		}
		c.Next()
	}
}
