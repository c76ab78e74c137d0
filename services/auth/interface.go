package auth

import (
	"context"
	"io"

	"queuepoint/models"
	"queuepoint/upstream"
)

// SessionState is what the portal knows about one portal session.
type SessionState struct {
	User            *models.User `json:"user,omitempty"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// SessionService owns the persisted auth state of portal sessions: the
// upstream bearer token and the serialized user record, stored redundantly
// under fixed key prefixes so sessions survive portal restarts and page
// reloads.
type SessionService interface {
	// Login exchanges credentials with the role-selected upstream endpoint
	// and persists the returned token and user.
	Login(ctx context.Context, sid, email, password, role string) (*models.User, error)
	// Logout clears persisted session state unconditionally.
	Logout(ctx context.Context, sid string) error
	// Resume revalidates a persisted token against the upstream profile
	// endpoint; any failure clears the persisted state.
	Resume(ctx context.Context, sid string) (*SessionState, error)
	// Current reads the persisted state without touching the backend.
	Current(ctx context.Context, sid string) (*SessionState, error)
	// Token returns the persisted bearer token, or ErrNotAuthenticated.
	Token(ctx context.Context, sid string) (string, error)
	// UpdateProfile submits changed fields and merges the backend response
	// into the persisted user.
	UpdateProfile(ctx context.Context, sid string, update models.ProfileUpdate) (*models.User, error)
	// UpdateProfileImage does the same with an attached image, forwarded as
	// multipart form data.
	UpdateProfileImage(ctx context.Context, sid string, update models.ProfileUpdate, imageName string, image io.Reader) (*models.User, error)
}

// UpstreamAuth is the slice of the backend client the session service needs.
type UpstreamAuth interface {
	Login(ctx context.Context, email, password, role string) (*upstream.LoginResponse, error)
	GetProfile(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, token string, update models.ProfileUpdate) (*models.User, error)
	UpdateProfileMultipart(ctx context.Context, token string, fields map[string]string, imageName string, image io.Reader) (*models.User, error)
}
