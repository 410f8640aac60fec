package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/gogotex/bridges/internal/identity"
)

// limitKey prefers the authenticated subject (NAT-friendly per-user
// limiting) and falls back to the client IP.
func limitKey(c *gin.Context) string {
	if who := identity.FromContext(c.Request.Context()); who != nil && who.ID != "" {
		return "sub:" + who.ID
	}
	if v, ok := c.Get(ClaimsKey); ok {
		if cm, ok := v.(map[string]interface{}); ok {
			if sub, ok := cm["sub"].(string); ok && sub != "" {
				return "sub:" + sub
			}
		}
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}
