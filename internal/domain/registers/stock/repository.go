package stock

import (
	"context"

	"millstock/internal/core/id"
)

// Repository defines persistence for stock records.
//
// The *ForUpdate methods acquire a row lock (SELECT ... FOR UPDATE) so the
// read-validate-write sequence of a mutation serializes against concurrent
// writers. They must be called inside a transaction.
type Repository interface {
	// GetForUpdate returns the locked record for (product, factory).
	// Returns a NotFound AppError if no record exists.
	GetForUpdate(ctx context.Context, productID, factoryID id.ID) (*Record, error)

	// FindOrCreateForUpdate returns the locked record for (product, factory),
	// inserting one with opening_stock=0 when absent.
	FindOrCreateForUpdate(ctx context.Context, productID, factoryID id.ID) (*Record, error)

	// Save persists the mutated balance of a previously loaded record.
	Save(ctx context.Context, rec *Record) error

	// Get returns the record without locking (read paths).
	Get(ctx context.Context, productID, factoryID id.ID) (*Record, error)

	// ListByFactory returns all non-deleted records for a factory.
	ListByFactory(ctx context.Context, factoryID id.ID) ([]Record, error)

	// ListByProduct returns records across all factories for a product.
	ListByProduct(ctx context.Context, productID id.ID) ([]Record, error)

	// List returns all non-deleted records, newest-first.
	List(ctx context.Context, limit, offset int) ([]Record, error)
}
