package directory

import (
	"context"

	"queuepoint/models"
)

// Service exposes the cached business directory to the rest of the portal.
type Service interface {
	// ListBusinesses returns every business with decorated departments.
	ListBusinesses(ctx context.Context) ([]models.BusinessView, error)
	// FindDepartment locates a department by id together with its owning
	// business.
	FindDepartment(ctx context.Context, departmentID string) (*models.Business, *models.Department, error)
	// Refresh re-primes the cache from the upstream directory endpoint.
	Refresh(ctx context.Context) error
}

// UpstreamDirectory is the slice of the backend client the directory needs.
type UpstreamDirectory interface {
	FetchBusinesses(ctx context.Context) ([]models.Business, error)
}
