package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PortalSessionHeader carries the portal session id that stands in for the
// browser: auth state and wizard sessions are keyed by it.
const PortalSessionHeader = "X-Portal-Session"

// PortalSessionMiddleware reads the portal session id from the request,
// minting a fresh one when the client has none yet, and echoes it back so the
// client can persist it.
func PortalSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetHeader(PortalSessionHeader)
		if sid == "" {
			sid = uuid.New().String()
		}
		c.Set("portalSID", sid)
		c.Header(PortalSessionHeader, sid)
		c.Next()
	}
}
