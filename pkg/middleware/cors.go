package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// CORS adapts an rs/cors policy to gin. Preflight requests are answered
// here and never reach the route handlers.
func CORS(opts cors.Options) gin.HandlerFunc {
	policy := cors.New(opts)
	return func(c *gin.Context) {
		policy.HandlerFunc(c.Writer, c.Request)
		if !opts.OptionsPassthrough &&
			c.Request.Method == http.MethodOptions &&
			c.GetHeader("Access-Control-Request-Method") != "" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
