package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"queuepoint/models"
	"queuepoint/services/wizard"
)

// stubWizard returns scripted results per operation.
type stubWizard struct {
	session *models.WizardSession
	err     error
}

func (s *stubWizard) Start(ctx context.Context, portalSID string) (*models.WizardSession, error) {
	return s.session, s.err
}
func (s *stubWizard) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	return s.session, s.err
}
func (s *stubWizard) SelectDepartment(ctx context.Context, sessionID, departmentID string) (*models.WizardSession, error) {
	return s.session, s.err
}
func (s *stubWizard) SubmitDetails(ctx context.Context, sessionID string, details wizard.DetailsInput) (*models.WizardSession, error) {
	return s.session, s.err
}
func (s *stubWizard) Back(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	return s.session, s.err
}
func (s *stubWizard) Confirm(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	return s.session, s.err
}
func (s *stubWizard) Reset(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	return s.session, s.err
}

func newWizardRouter(svc wizard.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewWizardHandler(svc)
	r.POST("/portal/wizard", h.StartHandler)
	r.POST("/portal/wizard/:sessionID/select", h.SelectDepartmentHandler)
	r.POST("/portal/wizard/:sessionID/confirm", h.ConfirmHandler)
	r.GET("/portal/wizard/:sessionID/qr", h.QRCodeHandler)
	return r
}

func TestStartHandlerReturnsSession(t *testing.T) {
	session := &models.WizardSession{SessionID: "w1", Step: models.StepDepartments}
	router := newWizardRouter(&stubWizard{session: session})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/portal/wizard", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var got models.WizardSession
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.SessionID != "w1" || got.Step != models.StepDepartments {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestSelectHandlerMapsValidationError(t *testing.T) {
	router := newWizardRouter(&stubWizard{err: wizard.NewValidationError("department", "Radiology is currently full")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/portal/wizard/w1/select",
		strings.NewReader(`{"departmentId":"dep-full"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "currently full") {
		t.Fatalf("expected validation message in body, got %s", w.Body.String())
	}
}

func TestConfirmHandlerMapsInFlight(t *testing.T) {
	router := newWizardRouter(&stubWizard{err: wizard.ErrSubmissionInFlight})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/portal/wizard/w1/confirm", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestConfirmHandlerMapsMissingSession(t *testing.T) {
	router := newWizardRouter(&stubWizard{err: wizard.ErrSessionNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/portal/wizard/w1/confirm", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestQRCodeHandlerBeforeSuccess(t *testing.T) {
	session := &models.WizardSession{SessionID: "w1", Step: models.StepConfirm}
	router := newWizardRouter(&stubWizard{session: session})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/portal/wizard/w1/qr", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before success step, got %d", w.Code)
	}
}

func TestQRCodeHandlerRendersPNG(t *testing.T) {
	session := &models.WizardSession{
		SessionID: "w1",
		Step:      models.StepSuccess,
		Booking:   models.BookingData{QRPayload: `{"bookingId":"bk-1","tokenNumber":7}`},
	}
	router := newWizardRouter(&stubWizard{session: session})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/portal/wizard/w1/qr", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %s", ct)
	}
	// PNG magic bytes.
	body := w.Body.Bytes()
	if len(body) < 8 || body[0] != 0x89 || string(body[1:4]) != "PNG" {
		t.Fatal("response is not a PNG")
	}
}
