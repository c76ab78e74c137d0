package handlers

import "github.com/gin-gonic/gin"

// portalSID returns the portal session id set by the session middleware.
func portalSID(c *gin.Context) string {
	return c.GetString("portalSID")
}
