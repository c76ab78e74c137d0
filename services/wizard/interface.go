package wizard

import (
	"context"

	"queuepoint/models"
	"queuepoint/services/auth"
	"queuepoint/services/directory"
	"queuepoint/upstream"

	"github.com/go-redis/redis/v8"
)

// DetailsInput carries the customer details step of the wizard. Phone is
// normalized (non-digit characters stripped) before validation.
type DetailsInput struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,len=10,numeric"`
	Email string `json:"email" validate:"omitempty,email"`
	Notes string `json:"notes"`
}

// Service drives the four-step booking wizard. Sessions live in Redis and
// expire after a period of inactivity; every operation loads, transitions and
// re-persists the session.
type Service interface {
	// Start creates a fresh wizard session on the departments step, seeding
	// customer name and email from the portal's auth session when present.
	Start(ctx context.Context, portalSID string) (*models.WizardSession, error)
	// Get returns the current session state.
	Get(ctx context.Context, sessionID string) (*models.WizardSession, error)
	// SelectDepartment records the chosen department and advances to the
	// details step. Full departments are rejected.
	SelectDepartment(ctx context.Context, sessionID, departmentID string) (*models.WizardSession, error)
	// SubmitDetails validates and records customer details and advances to
	// the confirm step.
	SubmitDetails(ctx context.Context, sessionID string, details DetailsInput) (*models.WizardSession, error)
	// Back navigates one step backward where allowed.
	Back(ctx context.Context, sessionID string) (*models.WizardSession, error)
	// Confirm submits the booking upstream and advances to the success step.
	// Exactly one submission may be in flight per session.
	Confirm(ctx context.Context, sessionID string) (*models.WizardSession, error)
	// Reset returns the session to the departments step, clearing all
	// transient fields and re-seeding name/email from the auth session.
	Reset(ctx context.Context, sessionID string) (*models.WizardSession, error)
}

// UpstreamBooking is the slice of the backend client the wizard needs.
type UpstreamBooking interface {
	BookQueue(ctx context.Context, token string, req upstream.BookingRequest) (*upstream.BookingRecord, error)
}

// DefaultWizardService implements Service.
type DefaultWizardService struct {
	Directory directory.Service
	Upstream  UpstreamBooking
	Sessions  auth.SessionService
	Cache     *redis.Client
}
