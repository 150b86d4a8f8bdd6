package product

import (
	"context"

	"millstock/internal/core/id"
	"millstock/internal/domain"
)

// Repository defines product persistence operations.
type Repository interface {
	domain.CatalogRepository[*Product]

	// ListByKind returns non-deleted products of the given kind.
	ListByKind(ctx context.Context, kind Kind, filter domain.ListFilter) (domain.ListResult[*Product], error)

	// GetKind returns the kind of an existing product without loading it fully.
	GetKind(ctx context.Context, productID id.ID) (Kind, error)
}
