package material

import (
	"context"
	"errors"

	domain "bafs/internal/domain/material"
)

// ErrNotFound is returned when no material matches the given ID.
var ErrNotFound = errors.New("material not found")

// Store persists Material state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Material, error)
	Save(ctx context.Context, value domain.Material) error
	// List returns all materials, newest first.
	List(ctx context.Context) ([]domain.Material, error)
}
