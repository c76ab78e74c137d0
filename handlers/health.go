package handlers

import (
	"context"
	"net/http"
	"time"

	"queuepoint/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports Redis connectivity.
func HealthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sessionOK := utils.GetSessionCacheClient().Ping(ctx).Err() == nil
	directoryOK := utils.GetDirectoryCacheClient().Ping(ctx).Err() == nil

	status := http.StatusOK
	if !sessionOK || !directoryOK {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"sessionCache":   sessionOK,
		"directoryCache": directoryOK,
		"checkedAt":      time.Now(),
	})
}
