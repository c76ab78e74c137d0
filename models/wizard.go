package models

import "time"

// WizardStep identifies where a booking wizard session currently sits.
type WizardStep string

const (
	StepDepartments WizardStep = "departments"
	StepDetails     WizardStep = "details"
	StepConfirm     WizardStep = "confirm"
	StepSuccess     WizardStep = "success"
)

// BookingData holds the transient state collected across the wizard steps.
// The token fields are populated only once the upstream booking succeeds.
type BookingData struct {
	BusinessID     string `json:"businessId,omitempty"`
	BusinessName   string `json:"businessName,omitempty"`
	DepartmentID   string `json:"departmentId,omitempty"`
	DepartmentName string `json:"departmentName,omitempty"`

	CustomerName string `json:"customerName,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Notes        string `json:"notes,omitempty"`

	// Display-only guess shown on the confirm step; the authoritative token
	// number comes from the booking response.
	TokenEstimate int `json:"tokenEstimate,omitempty"`

	TokenNumber   int       `json:"tokenNumber,omitempty"`
	EstimatedWait int       `json:"estimatedWait,omitempty"`
	BookingID     string    `json:"bookingId,omitempty"`
	QRPayload     string    `json:"qrPayload,omitempty"`
	BookedAt      time.Time `json:"bookedAt,omitempty"`
}

// WizardSession holds context between the wizard steps. It is cached in Redis
// under the session id and expires after a period of inactivity.
type WizardSession struct {
	SessionID string      `json:"sessionId"`
	PortalSID string      `json:"portalSid,omitempty"`
	UserID    string      `json:"userId,omitempty"`
	Step      WizardStep  `json:"step"`
	Booking   BookingData `json:"booking"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// QRPayload is the booking metadata encoded into the success-step QR code,
// serialized as a JSON string.
type QRPayload struct {
	BookingID      string    `json:"bookingId"`
	BusinessName   string    `json:"businessName"`
	DepartmentName string    `json:"departmentName"`
	TokenNumber    int       `json:"tokenNumber"`
	CustomerName   string    `json:"customerName"`
	BookedAt       time.Time `json:"bookedAt"`
}
