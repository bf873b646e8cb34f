package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/response"
)

// AdminTokenHeader carries the shared admin secret.
const AdminTokenHeader = "X-Admin-Token"

// RequireAdmin rejects requests whose admin token does not match.
func RequireAdmin(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(AdminTokenHeader)
		if presented == "" || adminToken == "" ||
			subtle.ConstantTimeCompare([]byte(presented), []byte(adminToken)) != 1 {
			response.ErrorWithStatus(c, http.StatusUnauthorized, "admin token invalid", "")
			c.Abort()
			return
		}
		c.Next()
	}
}
