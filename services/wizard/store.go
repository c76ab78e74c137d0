package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"queuepoint/models"
	"queuepoint/utils"

	"github.com/go-redis/redis/v8"
)

// loadSession fetches and decodes a wizard session from the cache.
func (s *DefaultWizardService) loadSession(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	data, err := s.Cache.Get(ctx, utils.WizardSessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read wizard session: %w", err)
	}
	var session models.WizardSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse wizard session: %w", err)
	}
	return &session, nil
}

// saveSession re-persists a session, refreshing its TTL.
func (s *DefaultWizardService) saveSession(ctx context.Context, session *models.WizardSession) error {
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard session: %w", err)
	}
	if err := s.Cache.Set(ctx, utils.WizardSessionPrefix+session.SessionID, data, utils.WizardSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store wizard session: %w", err)
	}
	return nil
}

// acquireSubmitLock takes the per-session in-flight lock. It is the
// server-side equivalent of the confirm button's loading flag: while held,
// further submissions for the session are rejected.
func (s *DefaultWizardService) acquireSubmitLock(ctx context.Context, sessionID string) (bool, error) {
	ok, err := s.Cache.SetNX(ctx, utils.WizardLockPrefix+sessionID, 1, utils.WizardLockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire submit lock: %w", err)
	}
	return ok, nil
}

func (s *DefaultWizardService) releaseSubmitLock(ctx context.Context, sessionID string) {
	_ = s.Cache.Del(ctx, utils.WizardLockPrefix+sessionID).Err()
}
