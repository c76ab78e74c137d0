package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"queuepoint/models"
	"queuepoint/upstream"
	"queuepoint/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DefaultSessionService implements SessionService over Redis.
type DefaultSessionService struct {
	Upstream UpstreamAuth
	Cache    *redis.Client
}

func (s *DefaultSessionService) Login(ctx context.Context, sid, email, password, role string) (*models.User, error) {
	if role != models.RoleCustomer && role != models.RoleBusiness {
		return nil, ErrInvalidRole
	}

	resp, err := s.Upstream.Login(ctx, email, password, role)
	if err != nil {
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return nil, NewLoginError(apiErr.Message)
		}
		utils.GetLogger().Error("Login request failed", zap.Error(err))
		return nil, NewLoginError("authentication failed, please try again")
	}

	// A usable response must carry both a token and a user with a role.
	if resp.Token == "" || resp.User == nil || resp.User.Role == "" {
		return nil, NewLoginError("malformed login response")
	}

	if err := s.persist(ctx, sid, resp.Token, resp.User); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return resp.User, nil
}

func (s *DefaultSessionService) Logout(ctx context.Context, sid string) error {
	return s.clear(ctx, sid)
}

func (s *DefaultSessionService) Resume(ctx context.Context, sid string) (*SessionState, error) {
	token, err := s.Cache.Get(ctx, utils.AuthTokenPrefix+sid).Result()
	if err == redis.Nil || token == "" {
		return &SessionState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read persisted token: %w", err)
	}

	// A token already past its expiry claim cannot resolve a profile; skip
	// the round trip and discard it.
	if utils.TokenExpired(token) {
		_ = s.clear(ctx, sid)
		return &SessionState{}, nil
	}

	user, err := s.Upstream.GetProfile(ctx, token)
	if err != nil {
		utils.GetLogger().Info("Session resume failed, clearing persisted state",
			zap.String("sid", sid), zap.Error(err))
		_ = s.clear(ctx, sid)
		return &SessionState{}, nil
	}

	if err := s.persist(ctx, sid, token, user); err != nil {
		return nil, fmt.Errorf("failed to persist resumed session: %w", err)
	}
	return &SessionState{User: user, IsAuthenticated: true}, nil
}

func (s *DefaultSessionService) Current(ctx context.Context, sid string) (*SessionState, error) {
	token, err := s.Cache.Get(ctx, utils.AuthTokenPrefix+sid).Result()
	if err == redis.Nil || token == "" {
		return &SessionState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read persisted token: %w", err)
	}

	data, err := s.Cache.Get(ctx, utils.AuthUserPrefix+sid).Result()
	if err != nil {
		if err != redis.Nil {
			return nil, fmt.Errorf("failed to read persisted user: %w", err)
		}
		_ = s.clear(ctx, sid)
		return &SessionState{}, nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		// Malformed persisted state is equivalent to no session.
		utils.GetLogger().Warn("Discarding malformed persisted user record", zap.String("sid", sid))
		_ = s.clear(ctx, sid)
		return &SessionState{}, nil
	}
	return &SessionState{User: &user, IsAuthenticated: true}, nil
}

func (s *DefaultSessionService) Token(ctx context.Context, sid string) (string, error) {
	token, err := s.Cache.Get(ctx, utils.AuthTokenPrefix+sid).Result()
	if err == redis.Nil || token == "" {
		return "", ErrNotAuthenticated
	}
	if err != nil {
		return "", fmt.Errorf("failed to read persisted token: %w", err)
	}
	return token, nil
}

func (s *DefaultSessionService) UpdateProfile(ctx context.Context, sid string, update models.ProfileUpdate) (*models.User, error) {
	token, err := s.Token(ctx, sid)
	if err != nil {
		return nil, err
	}
	updated, err := s.Upstream.UpdateProfile(ctx, token, update)
	if err != nil {
		return nil, fmt.Errorf("profile update failed: %w", err)
	}
	if err := s.persist(ctx, sid, token, updated); err != nil {
		return nil, fmt.Errorf("failed to persist updated profile: %w", err)
	}
	return updated, nil
}

func (s *DefaultSessionService) UpdateProfileImage(ctx context.Context, sid string, update models.ProfileUpdate, imageName string, image io.Reader) (*models.User, error) {
	token, err := s.Token(ctx, sid)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]string)
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.PhoneNumber != nil {
		fields["phoneNumber"] = *update.PhoneNumber
	}
	if update.Location != nil {
		fields["location"] = *update.Location
	}

	updated, err := s.Upstream.UpdateProfileMultipart(ctx, token, fields, imageName, image)
	if err != nil {
		return nil, fmt.Errorf("profile update failed: %w", err)
	}
	if err := s.persist(ctx, sid, token, updated); err != nil {
		return nil, fmt.Errorf("failed to persist updated profile: %w", err)
	}
	return updated, nil
}

// persist writes token and user under their fixed storage keys.
func (s *DefaultSessionService) persist(ctx context.Context, sid, token string, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user record: %w", err)
	}
	if err := s.Cache.Set(ctx, utils.AuthTokenPrefix+sid, token, utils.AuthSessionTTL).Err(); err != nil {
		return err
	}
	return s.Cache.Set(ctx, utils.AuthUserPrefix+sid, data, utils.AuthSessionTTL).Err()
}

func (s *DefaultSessionService) clear(ctx context.Context, sid string) error {
	return s.Cache.Del(ctx, utils.AuthTokenPrefix+sid, utils.AuthUserPrefix+sid).Err()
}
