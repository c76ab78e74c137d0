package handlers

import (
	"net/http"

	"queuepoint/models"
	"queuepoint/utils"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// QRCodeHandler renders the success-step QR payload as a scannable PNG.
// Available only once the booking has been confirmed.
func (h *WizardHandler) QRCodeHandler(c *gin.Context) {
	session, err := h.Wizard.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.wizardError(c, err)
		return
	}
	if session.Step != models.StepSuccess || session.Booking.QRPayload == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No confirmed booking for this session"})
		return
	}

	png, err := qrcode.Encode(session.Booking.QRPayload, qrcode.Medium, 256)
	if err != nil {
		utils.GetLogger().Error("QR encoding failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not render QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
