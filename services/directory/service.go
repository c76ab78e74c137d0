package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"queuepoint/models"
	"queuepoint/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrDepartmentNotFound is returned when no business carries the requested
// department.
var ErrDepartmentNotFound = fmt.Errorf("department not found")

// DefaultDirectoryService implements Service over the upstream directory
// endpoint with a Redis cache in front of it.
type DefaultDirectoryService struct {
	Upstream UpstreamDirectory
	Cache    *redis.Client
	CacheTTL time.Duration
}

// NewDefaultDirectoryService builds a directory service. A non-positive TTL
// falls back to two minutes.
func NewDefaultDirectoryService(up UpstreamDirectory, cache *redis.Client, ttl time.Duration) *DefaultDirectoryService {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &DefaultDirectoryService{Upstream: up, Cache: cache, CacheTTL: ttl}
}

// ListBusinesses returns the decorated directory, serving from cache when a
// fresh copy is present.
func (s *DefaultDirectoryService) ListBusinesses(ctx context.Context) ([]models.BusinessView, error) {
	businesses, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]models.BusinessView, 0, len(businesses))
	for _, b := range businesses {
		views = append(views, b.View())
	}
	return views, nil
}

// FindDepartment scans the directory for the department id.
func (s *DefaultDirectoryService) FindDepartment(ctx context.Context, departmentID string) (*models.Business, *models.Department, error) {
	businesses, err := s.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	for i := range businesses {
		for j := range businesses[i].Departments {
			if businesses[i].Departments[j].ID == departmentID {
				return &businesses[i], &businesses[i].Departments[j], nil
			}
		}
	}
	return nil, nil, ErrDepartmentNotFound
}

// Refresh fetches the directory from upstream and overwrites the cache.
func (s *DefaultDirectoryService) Refresh(ctx context.Context) error {
	businesses, err := s.Upstream.FetchBusinesses(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch business directory: %w", err)
	}
	if err := s.store(ctx, businesses); err != nil {
		return err
	}
	utils.GetLogger().Debug("Refreshed business directory cache",
		zap.Int("businesses", len(businesses)))
	return nil
}

// load serves from the cache, falling back to a refresh on miss. A corrupt
// cache entry is treated as a miss.
func (s *DefaultDirectoryService) load(ctx context.Context) ([]models.Business, error) {
	data, err := s.Cache.Get(ctx, utils.DirectoryCacheKey).Result()
	if err == nil {
		var businesses []models.Business
		if err := json.Unmarshal([]byte(data), &businesses); err == nil {
			return businesses, nil
		}
		utils.GetLogger().Warn("Discarding corrupt directory cache entry")
	} else if err != redis.Nil {
		utils.GetLogger().Warn("Directory cache read failed", zap.Error(err))
	}

	businesses, err := s.Upstream.FetchBusinesses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch business directory: %w", err)
	}
	if err := s.store(ctx, businesses); err != nil {
		utils.GetLogger().Warn("Directory cache write failed", zap.Error(err))
	}
	return businesses, nil
}

func (s *DefaultDirectoryService) store(ctx context.Context, businesses []models.Business) error {
	data, err := json.Marshal(businesses)
	if err != nil {
		return fmt.Errorf("failed to marshal business directory: %w", err)
	}
	return s.Cache.Set(ctx, utils.DirectoryCacheKey, data, s.CacheTTL).Err()
}
