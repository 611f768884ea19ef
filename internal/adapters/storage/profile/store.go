package profile

import (
	"context"
	"errors"

	domain "bafs/internal/domain/profile"
)

// ErrNotFound is returned when no profile matches the given student ID.
var ErrNotFound = errors.New("profile not found")

// Store persists Profile state.
type Store interface {
	GetByStudentID(ctx context.Context, studentID string) (domain.Profile, error)
	Save(ctx context.Context, value domain.Profile) error
	List(ctx context.Context, filter ListFilter) ([]domain.Profile, error)
	Count(ctx context.Context) (int, error)
	// TopByAssets returns up to limit profiles ordered by assets descending,
	// ties broken by student ID ascending.
	TopByAssets(ctx context.Context, limit int) ([]domain.Profile, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit     int
	Offset    int
	Role      string
	CompanyID string
}
