package swap

import (
	"context"

	"millstock/internal/core/id"
	"millstock/internal/domain"
	"millstock/internal/domain/catalogs/product"
)

// Repository defines swap persistence.
type Repository interface {
	Create(ctx context.Context, sw *Swap) error

	// GetByID returns NOT_FOUND when the swap does not exist.
	GetByID(ctx context.Context, swapID id.ID) (*Swap, error)

	// Update persists the swap and bumps its version; a stale version
	// fails with CONCURRENT_MODIFICATION.
	Update(ctx context.Context, sw *Swap) error

	Delete(ctx context.Context, swapID id.ID) error

	// List returns swaps of one kind, newest first.
	List(ctx context.Context, kind product.Kind, filter domain.ListFilter) (domain.ListResult[*Swap], error)
}
