package boardstock

import (
	"context"

	"millstock/internal/core/id"
)

// Repository defines persistence for board stock rows.
type Repository interface {
	// GetForUpdate returns the locked row. Must run inside a transaction.
	GetForUpdate(ctx context.Context, stockID id.ID) (*Stock, error)

	// Save persists a mutated row.
	Save(ctx context.Context, s *Stock) error

	// Get returns the row without locking.
	Get(ctx context.Context, stockID id.ID) (*Stock, error)

	// Create inserts a new board stock row.
	Create(ctx context.Context, s *Stock) error

	// List returns non-deleted rows, newest-first.
	List(ctx context.Context, limit, offset int) ([]Stock, error)
}
