package usage

import (
	"context"

	"millstock/internal/core/id"
	"millstock/internal/domain"
	"millstock/internal/domain/catalogs/product"
)

// Repository defines usage entry persistence.
type Repository interface {
	Create(ctx context.Context, e *Entry) error

	// GetByID returns NOT_FOUND when the entry does not exist.
	GetByID(ctx context.Context, entryID id.ID) (*Entry, error)

	// Update persists the entry and bumps its version; a stale version
	// fails with CONCURRENT_MODIFICATION.
	Update(ctx context.Context, e *Entry) error

	Delete(ctx context.Context, entryID id.ID) error

	// List returns entries of one kind, newest first.
	List(ctx context.Context, kind product.Kind, filter domain.ListFilter) (domain.ListResult[*Entry], error)
}
