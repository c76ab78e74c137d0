package handlers

import (
	"net/http"

	"queuepoint/services/directory"
	"queuepoint/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DirectoryHandler serves the cached business directory.
type DirectoryHandler struct {
	Directory directory.Service
}

func NewDirectoryHandler(dir directory.Service) *DirectoryHandler {
	return &DirectoryHandler{Directory: dir}
}

// ListBusinessesHandler returns every business with decorated departments.
func (h *DirectoryHandler) ListBusinessesHandler(c *gin.Context) {
	businesses, err := h.Directory.ListBusinesses(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Directory listing failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not load businesses, please try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"businesses": businesses})
}
