package jobcard

import (
	"context"

	"millstock/internal/core/id"
	"millstock/internal/domain"
)

// Repository defines job card persistence.
type Repository interface {
	Create(ctx context.Context, c *Card) error

	// GetByID returns NOT_FOUND when the card does not exist.
	GetByID(ctx context.Context, cardID id.ID) (*Card, error)

	// Update persists the card and bumps its version; a stale version
	// fails with CONCURRENT_MODIFICATION.
	Update(ctx context.Context, c *Card) error

	Delete(ctx context.Context, cardID id.ID) error

	// List returns cards newest first.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Card], error)
}
