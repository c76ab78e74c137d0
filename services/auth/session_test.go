package auth

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"

	"queuepoint/models"
	"queuepoint/upstream"
	"queuepoint/utils"
)

// scripted upstream backend for auth flows.
type fakeBackend struct {
	loginResp    *upstream.LoginResponse
	loginErr     error
	profile      *models.User
	profileErr   error
	profileCalls int
}

func (f *fakeBackend) Login(ctx context.Context, email, password, role string) (*upstream.LoginResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

func (f *fakeBackend) GetProfile(ctx context.Context, token string) (*models.User, error) {
	f.profileCalls++
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeBackend) UpdateProfile(ctx context.Context, token string, update models.ProfileUpdate) (*models.User, error) {
	return f.profile, nil
}

func (f *fakeBackend) UpdateProfileMultipart(ctx context.Context, token string, fields map[string]string, imageName string, image io.Reader) (*models.User, error) {
	return f.profile, nil
}

func newTestSessionService(t *testing.T, backend *fakeBackend) (*DefaultSessionService, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &DefaultSessionService{Upstream: backend, Cache: client}, client
}

func signedToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestLoginPersistsSession(t *testing.T) {
	user := &models.User{ID: "u1", Name: "Jane", Email: "jane@example.com", Role: models.RoleCustomer}
	svc, _ := newTestSessionService(t, &fakeBackend{
		loginResp: &upstream.LoginResponse{User: user, Token: "tok-1"},
	})
	ctx := context.Background()

	got, err := svc.Login(ctx, "sid-1", "jane@example.com", "pw", models.RoleCustomer)
	require.NoError(t, err)
	require.Equal(t, "u1", got.ID)

	state, err := svc.Current(ctx, "sid-1")
	require.NoError(t, err)
	require.True(t, state.IsAuthenticated)
	require.Equal(t, "jane@example.com", state.User.Email)

	token, err := svc.Token(ctx, "sid-1")
	require.NoError(t, err)
	require.Equal(t, "tok-1", token)
}

func TestLoginRejectsUnsupportedRole(t *testing.T) {
	backend := &fakeBackend{loginErr: errors.New("must not be called")}
	svc, _ := newTestSessionService(t, backend)

	_, err := svc.Login(context.Background(), "sid-1", "a@b.c", "pw", "admin")
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestLoginMalformedResponse(t *testing.T) {
	cases := []struct {
		name string
		resp *upstream.LoginResponse
	}{
		{"missing token", &upstream.LoginResponse{User: &models.User{ID: "u1", Role: models.RoleCustomer}}},
		{"missing user", &upstream.LoginResponse{Token: "tok"}},
		{"missing role", &upstream.LoginResponse{User: &models.User{ID: "u1"}, Token: "tok"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newTestSessionService(t, &fakeBackend{loginResp: tc.resp})
			_, err := svc.Login(context.Background(), "sid-1", "a@b.c", "pw", models.RoleCustomer)
			var loginErr *LoginError
			require.ErrorAs(t, err, &loginErr)

			// Nothing may have been persisted.
			state, err := svc.Current(context.Background(), "sid-1")
			require.NoError(t, err)
			require.False(t, state.IsAuthenticated)
		})
	}
}

func TestLoginSurfacesBackendMessage(t *testing.T) {
	svc, _ := newTestSessionService(t, &fakeBackend{
		loginErr: &upstream.APIError{StatusCode: 401, Message: "invalid email or password"},
	})
	_, err := svc.Login(context.Background(), "sid-1", "a@b.c", "pw", models.RoleCustomer)
	var loginErr *LoginError
	require.ErrorAs(t, err, &loginErr)
	require.Equal(t, "invalid email or password", loginErr.Message)
}

func TestResumeWithUnresolvableProfileClearsState(t *testing.T) {
	backend := &fakeBackend{profileErr: errors.New("401 unauthorized")}
	svc, client := newTestSessionService(t, backend)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, utils.AuthTokenPrefix+"sid-1", signedToken(t, time.Hour), 0).Err())
	require.NoError(t, client.Set(ctx, utils.AuthUserPrefix+"sid-1", `{"id":"u1"}`, 0).Err())

	state, err := svc.Resume(ctx, "sid-1")
	require.NoError(t, err)
	require.False(t, state.IsAuthenticated)

	// Persisted state must be gone.
	_, err = client.Get(ctx, utils.AuthTokenPrefix+"sid-1").Result()
	require.ErrorIs(t, err, redis.Nil)
	_, err = client.Get(ctx, utils.AuthUserPrefix+"sid-1").Result()
	require.ErrorIs(t, err, redis.Nil)
}

func TestResumeExpiredTokenSkipsBackend(t *testing.T) {
	backend := &fakeBackend{profile: &models.User{ID: "u1"}}
	svc, client := newTestSessionService(t, backend)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, utils.AuthTokenPrefix+"sid-1", signedToken(t, -time.Hour), 0).Err())

	state, err := svc.Resume(ctx, "sid-1")
	require.NoError(t, err)
	require.False(t, state.IsAuthenticated)
	require.Zero(t, backend.profileCalls, "expired token must not trigger a profile fetch")

	_, err = client.Get(ctx, utils.AuthTokenPrefix+"sid-1").Result()
	require.ErrorIs(t, err, redis.Nil)
}

func TestResumeSuccess(t *testing.T) {
	backend := &fakeBackend{profile: &models.User{ID: "u1", Name: "Jane", Role: models.RoleCustomer}}
	svc, client := newTestSessionService(t, backend)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, utils.AuthTokenPrefix+"sid-1", signedToken(t, time.Hour), 0).Err())

	state, err := svc.Resume(ctx, "sid-1")
	require.NoError(t, err)
	require.True(t, state.IsAuthenticated)
	require.Equal(t, "Jane", state.User.Name)
}

func TestResumeWithoutTokenIsUnauthenticated(t *testing.T) {
	svc, _ := newTestSessionService(t, &fakeBackend{})
	state, err := svc.Resume(context.Background(), "sid-none")
	require.NoError(t, err)
	require.False(t, state.IsAuthenticated)
}

func TestCurrentDiscardsMalformedUserRecord(t *testing.T) {
	svc, client := newTestSessionService(t, &fakeBackend{})
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, utils.AuthTokenPrefix+"sid-1", "tok", 0).Err())
	require.NoError(t, client.Set(ctx, utils.AuthUserPrefix+"sid-1", "{not json", 0).Err())

	state, err := svc.Current(ctx, "sid-1")
	require.NoError(t, err)
	require.False(t, state.IsAuthenticated)

	// Malformed persisted data is dropped, token included.
	_, err = client.Get(ctx, utils.AuthTokenPrefix+"sid-1").Result()
	require.ErrorIs(t, err, redis.Nil)
}

func TestLogoutClearsState(t *testing.T) {
	svc, client := newTestSessionService(t, &fakeBackend{})
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, utils.AuthTokenPrefix+"sid-1", "tok", 0).Err())
	require.NoError(t, client.Set(ctx, utils.AuthUserPrefix+"sid-1", `{"id":"u1"}`, 0).Err())

	require.NoError(t, svc.Logout(ctx, "sid-1"))

	state, err := svc.Current(ctx, "sid-1")
	require.NoError(t, err)
	require.False(t, state.IsAuthenticated)
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	svc, _ := newTestSessionService(t, &fakeBackend{})
	name := "New Name"
	_, err := svc.UpdateProfile(context.Background(), "sid-none", models.ProfileUpdate{Name: &name})
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestUpdateProfileMergesResponse(t *testing.T) {
	backend := &fakeBackend{profile: &models.User{ID: "u1", Name: "New Name", Role: models.RoleCustomer}}
	svc, client := newTestSessionService(t, backend)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, utils.AuthTokenPrefix+"sid-1", "tok", 0).Err())
	require.NoError(t, client.Set(ctx, utils.AuthUserPrefix+"sid-1", `{"id":"u1","name":"Old Name","role":"customer"}`, 0).Err())

	name := "New Name"
	updated, err := svc.UpdateProfile(ctx, "sid-1", models.ProfileUpdate{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.Name)

	state, err := svc.Current(ctx, "sid-1")
	require.NoError(t, err)
	require.Equal(t, "New Name", state.User.Name)
}
