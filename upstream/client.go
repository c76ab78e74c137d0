// Package upstream is the typed client for the external queue backend. All
// business logic — admission control, token sequencing, wait-time estimation,
// persistence — lives behind this contract; the portal only relays requests
// and renders responses.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"queuepoint/models"
)

// Endpoint paths on the queue backend.
const (
	pathCustomerLogin = "/api/auth/login"
	pathBusinessLogin = "/api/businesses/login"
	pathBusinessesAll = "/api/businesses/all"
	pathBookQueue     = "/api/queues/book"
	pathProfile       = "/api/users/profile"
)

// Client calls the queue backend's REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a Client for the given base URL. A non-positive timeout
// falls back to 15 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIError carries the backend-supplied failure message along with the HTTP
// status it arrived with.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream returned %d", e.StatusCode)
}

// LoginResponse is the credential-exchange payload: both fields must be
// present for the login to count as successful.
type LoginResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// BookingRequest is the body of POST /api/queues/book.
type BookingRequest struct {
	BusinessID     string    `json:"businessId"`
	BusinessName   string    `json:"businessName"`
	DepartmentName string    `json:"departmentName"`
	CustomerName   string    `json:"customerName"`
	Phone          string    `json:"phone"`
	Notes          string    `json:"notes,omitempty"`
	BookedAt       time.Time `json:"bookedAt"`
}

// BookingRecord is the backend's confirmation of a booking. TokenNumber and
// EstimatedWait are optional in the contract; callers fall back to locally
// derived values when the backend omits them.
type BookingRecord struct {
	ID             string    `json:"id"`
	BusinessName   string    `json:"businessName"`
	DepartmentName string    `json:"departmentName"`
	TokenNumber    int       `json:"tokenNumber,omitempty"`
	EstimatedWait  int       `json:"estimatedWait,omitempty"`
	BookedAt       time.Time `json:"bookedAt"`
}

// Login exchanges credentials for a session. The role selects the endpoint:
// customers authenticate against the user login, business operators against
// the business login.
func (c *Client) Login(ctx context.Context, email, password, role string) (*LoginResponse, error) {
	path := pathCustomerLogin
	if role == models.RoleBusiness {
		path = pathBusinessLogin
	}
	body := map[string]string{"email": email, "password": password}

	var out LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, path, "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchBusinesses retrieves the full business directory, departments nested.
func (c *Client) FetchBusinesses(ctx context.Context) ([]models.Business, error) {
	var out []models.Business
	if err := c.doJSON(ctx, http.MethodGet, pathBusinessesAll, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BookQueue submits a booking on behalf of the authenticated customer.
func (c *Client) BookQueue(ctx context.Context, token string, req BookingRequest) (*BookingRecord, error) {
	var out BookingRecord
	if err := c.doJSON(ctx, http.MethodPost, pathBookQueue, token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProfile fetches the profile bound to the bearer token.
func (c *Client) GetProfile(ctx context.Context, token string) (*models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodGet, pathProfile, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile submits changed profile fields as JSON.
func (c *Client) UpdateProfile(ctx context.Context, token string, update models.ProfileUpdate) (*models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodPut, pathProfile, token, update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfileMultipart submits changed profile fields together with a
// profile image as multipart form data.
func (c *Client) UpdateProfileMultipart(ctx context.Context, token string, fields map[string]string, imageName string, image io.Reader) (*models.User, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %q: %w", key, err)
		}
	}
	part, err := writer.CreateFormFile("profileImage", imageName)
	if err != nil {
		return nil, fmt.Errorf("failed to create image form part: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("failed to copy image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+pathProfile, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build profile request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile update request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp)
	}

	var out models.User
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}
	return &out, nil
}

// doJSON performs a JSON request against the backend, decoding a 2xx body
// into out and non-2xx bodies into an APIError.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// decodeAPIError extracts the backend's error message, falling back to the
// bare status when the body is not the expected shape.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Message != "" {
			apiErr.Message = body.Message
		} else {
			apiErr.Message = body.Error
		}
	}
	return apiErr
}
