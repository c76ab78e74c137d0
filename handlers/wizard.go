package handlers

import (
	"errors"
	"net/http"

	"queuepoint/services/auth"
	"queuepoint/services/directory"
	"queuepoint/services/wizard"
	"queuepoint/upstream"
	"queuepoint/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WizardHandler exposes the booking wizard steps.
type WizardHandler struct {
	Wizard wizard.Service
}

func NewWizardHandler(svc wizard.Service) *WizardHandler {
	return &WizardHandler{Wizard: svc}
}

// StartHandler opens a fresh wizard session.
func (h *WizardHandler) StartHandler(c *gin.Context) {
	session, err := h.Wizard.Start(c.Request.Context(), portalSID(c))
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetHandler returns the current wizard state.
func (h *WizardHandler) GetHandler(c *gin.Context) {
	session, err := h.Wizard.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SelectDepartmentHandler records the department choice.
func (h *WizardHandler) SelectDepartmentHandler(c *gin.Context) {
	var req struct {
		DepartmentID string `json:"departmentId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	session, err := h.Wizard.SelectDepartment(c.Request.Context(), c.Param("sessionID"), req.DepartmentID)
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SubmitDetailsHandler records the customer details.
func (h *WizardHandler) SubmitDetailsHandler(c *gin.Context) {
	var req wizard.DetailsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	session, err := h.Wizard.SubmitDetails(c.Request.Context(), c.Param("sessionID"), req)
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// BackHandler navigates one step backward.
func (h *WizardHandler) BackHandler(c *gin.Context) {
	session, err := h.Wizard.Back(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ConfirmHandler submits the booking upstream.
func (h *WizardHandler) ConfirmHandler(c *gin.Context) {
	session, err := h.Wizard.Confirm(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ResetHandler clears the wizard back to the departments step.
func (h *WizardHandler) ResetHandler(c *gin.Context) {
	session, err := h.Wizard.Reset(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// wizardError maps service errors onto HTTP statuses.
func (h *WizardHandler) wizardError(c *gin.Context, err error) {
	var validationErr *wizard.ValidationError
	var stepErr *wizard.StepError
	var apiErr *upstream.APIError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "field": validationErr.Field})
	case errors.As(err, &stepErr):
		c.JSON(http.StatusConflict, gin.H{"error": stepErr.Error()})
	case errors.Is(err, wizard.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking session not found or expired"})
	case errors.Is(err, wizard.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "A booking submission is already in progress"})
	case errors.Is(err, directory.ErrDepartmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
	case errors.Is(err, auth.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign in to book a queue place"})
	case errors.As(err, &apiErr) && apiErr.Message != "":
		c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Message})
	default:
		utils.GetLogger().Error("Wizard operation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Something went wrong, please try again"})
	}
}
