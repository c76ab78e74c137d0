package wizard

import (
	"errors"
	"fmt"

	"queuepoint/models"
)

// ErrSessionNotFound is returned when a wizard session is missing or expired.
var ErrSessionNotFound = errors.New("wizard session not found or expired")

// ErrSubmissionInFlight is returned when a confirm arrives while another
// submission for the same session is still outstanding.
var ErrSubmissionInFlight = errors.New("booking submission already in flight")

// ValidationError reports a locally rejected input; no network call was made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// StepError reports an operation attempted from the wrong wizard step.
type StepError struct {
	Current models.WizardStep
	Wanted  models.WizardStep
}

func (e *StepError) Error() string {
	return fmt.Sprintf("operation requires step %q, session is on %q", e.Wanted, e.Current)
}
