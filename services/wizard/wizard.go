package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"queuepoint/models"
	"queuepoint/upstream"
	"queuepoint/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Start creates a new wizard session on the departments step.
func (s *DefaultWizardService) Start(ctx context.Context, portalSID string) (*models.WizardSession, error) {
	now := time.Now()
	session := &models.WizardSession{
		SessionID: uuid.New().String(),
		PortalSID: portalSID,
		Step:      models.StepDepartments,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.seedFromAuth(ctx, session)

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	utils.GetLogger().Debug("Started wizard session", zap.String("sessionId", session.SessionID))
	return session, nil
}

// Get returns the session as stored.
func (s *DefaultWizardService) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	return s.loadSession(ctx, sessionID)
}

// SelectDepartment records the chosen department and advances to details.
func (s *DefaultWizardService) SelectDepartment(ctx context.Context, sessionID, departmentID string) (*models.WizardSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepDepartments {
		return nil, &StepError{Current: session.Step, Wanted: models.StepDepartments}
	}
	if departmentID == "" {
		return nil, NewValidationError("department", "a department must be selected")
	}

	business, dept, err := s.Directory.FindDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if dept.IsFull() {
		return nil, NewValidationError("department", fmt.Sprintf("%s is currently full", dept.Name))
	}

	session.Booking.BusinessID = business.ID
	session.Booking.BusinessName = business.Name
	session.Booking.DepartmentID = dept.ID
	session.Booking.DepartmentName = dept.Name
	session.Booking.EstimatedWait = dept.EstimatedWait
	// Informational only; the backend assigns the real token number.
	session.Booking.TokenEstimate = dept.CurrentQueueSize + 1
	session.Step = models.StepDetails

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SubmitDetails validates customer details and advances to confirm.
func (s *DefaultWizardService) SubmitDetails(ctx context.Context, sessionID string, details DetailsInput) (*models.WizardSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepDetails {
		return nil, &StepError{Current: session.Step, Wanted: models.StepDetails}
	}

	details.Phone = NormalizePhone(details.Phone)
	if err := validateDetails(details); err != nil {
		return nil, err
	}

	session.Booking.CustomerName = details.Name
	session.Booking.Phone = details.Phone
	session.Booking.Email = details.Email
	session.Booking.Notes = details.Notes
	session.Step = models.StepConfirm

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Back navigates one step backward. Only details→departments and
// confirm→details are allowed.
func (s *DefaultWizardService) Back(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	switch session.Step {
	case models.StepDetails:
		session.Step = models.StepDepartments
	case models.StepConfirm:
		session.Step = models.StepDetails
	default:
		return nil, NewValidationError("step", "cannot navigate back from this step")
	}
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Confirm submits the booking to the queue backend. On failure the session
// stays on the confirm step and the submit lock is released so the customer
// can retry; nothing is retried automatically.
func (s *DefaultWizardService) Confirm(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepConfirm {
		return nil, &StepError{Current: session.Step, Wanted: models.StepConfirm}
	}

	acquired, err := s.acquireSubmitLock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrSubmissionInFlight
	}
	defer s.releaseSubmitLock(ctx, sessionID)

	token, err := s.Sessions.Token(ctx, session.PortalSID)
	if err != nil {
		return nil, err
	}

	bookedAt := time.Now()
	record, err := s.Upstream.BookQueue(ctx, token, upstream.BookingRequest{
		BusinessID:     session.Booking.BusinessID,
		BusinessName:   session.Booking.BusinessName,
		DepartmentName: session.Booking.DepartmentName,
		CustomerName:   session.Booking.CustomerName,
		Phone:          session.Booking.Phone,
		Notes:          session.Booking.Notes,
		BookedAt:       bookedAt,
	})
	if err != nil {
		bookingFailures.Inc()
		utils.GetLogger().Warn("Booking submission failed",
			zap.String("sessionId", sessionID), zap.Error(err))
		return nil, fmt.Errorf("booking submission failed: %w", err)
	}

	session.Booking.BookingID = record.ID
	session.Booking.TokenNumber = record.TokenNumber
	if session.Booking.TokenNumber == 0 {
		// Backend omitted the token number; surface the local guess.
		session.Booking.TokenNumber = session.Booking.TokenEstimate
	}
	if record.EstimatedWait > 0 {
		session.Booking.EstimatedWait = record.EstimatedWait
	}
	session.Booking.BookedAt = record.BookedAt
	if session.Booking.BookedAt.IsZero() {
		session.Booking.BookedAt = bookedAt
	}

	payload, err := json.Marshal(models.QRPayload{
		BookingID:      session.Booking.BookingID,
		BusinessName:   session.Booking.BusinessName,
		DepartmentName: session.Booking.DepartmentName,
		TokenNumber:    session.Booking.TokenNumber,
		CustomerName:   session.Booking.CustomerName,
		BookedAt:       session.Booking.BookedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR payload: %w", err)
	}
	session.Booking.QRPayload = string(payload)
	session.Step = models.StepSuccess

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	bookingsConfirmed.Inc()
	utils.GetLogger().Info("Booking confirmed",
		zap.String("sessionId", sessionID),
		zap.String("bookingId", session.Booking.BookingID),
		zap.Int("tokenNumber", session.Booking.TokenNumber))
	return session, nil
}

// Reset returns the session to the departments step with all transient
// fields cleared, re-seeding name and email from the auth session.
func (s *DefaultWizardService) Reset(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Booking = models.BookingData{}
	session.Step = models.StepDepartments
	s.seedFromAuth(ctx, session)

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// seedFromAuth pre-fills customer name and email from the active auth
// session. An unauthenticated or unreadable session leaves the fields empty.
func (s *DefaultWizardService) seedFromAuth(ctx context.Context, session *models.WizardSession) {
	if s.Sessions == nil || session.PortalSID == "" {
		return
	}
	state, err := s.Sessions.Current(ctx, session.PortalSID)
	if err != nil || !state.IsAuthenticated {
		return
	}
	session.UserID = state.User.ID
	session.Booking.CustomerName = state.User.Name
	session.Booking.Email = state.User.Email
}
