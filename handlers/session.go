package handlers

import (
	"errors"
	"net/http"
	"strings"

	"queuepoint/models"
	"queuepoint/services/auth"
	"queuepoint/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler exposes the auth session operations.
type SessionHandler struct {
	Sessions auth.SessionService
}

func NewSessionHandler(sessions auth.SessionService) *SessionHandler {
	return &SessionHandler{Sessions: sessions}
}

// LoginHandler exchanges credentials for a portal-persisted session.
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.Sessions.Login(c.Request.Context(), portalSID(c), req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidRole) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported role"})
			return
		}
		var loginErr *auth.LoginError
		if errors.As(err, &loginErr) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": loginErr.Message})
			return
		}
		logger.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed, please try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "isAuthenticated": true})
}

// LogoutHandler clears persisted session state unconditionally.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	if err := h.Sessions.Logout(c.Request.Context(), portalSID(c)); err != nil {
		utils.GetLogger().Error("Logout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isAuthenticated": false})
}

// CurrentSessionHandler reads persisted session state without touching the
// backend.
func (h *SessionHandler) CurrentSessionHandler(c *gin.Context) {
	state, err := h.Sessions.Current(c.Request.Context(), portalSID(c))
	if err != nil {
		utils.GetLogger().Error("Session read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session read failed"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// ResumeSessionHandler revalidates a persisted token against the backend
// profile endpoint; failures clear the persisted state.
func (h *SessionHandler) ResumeSessionHandler(c *gin.Context) {
	state, err := h.Sessions.Resume(c.Request.Context(), portalSID(c))
	if err != nil {
		utils.GetLogger().Error("Session resume failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session resume failed"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// UpdateProfileHandler submits changed profile fields. A multipart request
// with a profileImage file is forwarded as multipart; everything else goes as
// JSON.
func (h *SessionHandler) UpdateProfileHandler(c *gin.Context) {
	logger := utils.GetLogger()
	ctx := c.Request.Context()
	sid := portalSID(c)

	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		update := models.ProfileUpdate{}
		if v, ok := c.GetPostForm("name"); ok {
			update.Name = &v
		}
		if v, ok := c.GetPostForm("phoneNumber"); ok {
			update.PhoneNumber = &v
		}
		if v, ok := c.GetPostForm("location"); ok {
			update.Location = &v
		}

		fileHeader, err := c.FormFile("profileImage")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing profileImage file"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable profileImage file"})
			return
		}
		defer file.Close()

		user, err := h.Sessions.UpdateProfileImage(ctx, sid, update, fileHeader.Filename, file)
		if err != nil {
			h.profileError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
		return
	}

	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		logger.Error("Invalid profile update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	user, err := h.Sessions.UpdateProfile(ctx, sid, update)
	if err != nil {
		h.profileError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *SessionHandler) profileError(c *gin.Context, err error) {
	if errors.Is(err, auth.ErrNotAuthenticated) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
		return
	}
	utils.GetLogger().Error("Profile update failed", zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": "Profile update failed, please try again"})
}
