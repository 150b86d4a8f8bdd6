package usage

import (
	"context"

	"millstock/internal/core/apperror"
	"millstock/internal/core/entity"
	"millstock/internal/core/id"
	"millstock/internal/core/types"
	"millstock/internal/domain/catalogs/product"
)

// Entry is a stock-decreasing document: material drawn from a factory's
// stock for production. Each entry owns one validated debit against the
// stock record for its (product, factory) pair.
type Entry struct {
	entity.Document

	Quantity types.Quantity `json:"quantity" db:"quantity"`
	Type     string         `json:"type,omitempty" db:"type"`
	Kind     product.Kind   `json:"kind" db:"kind"`

	ProductID id.ID `json:"productId" db:"product_id"`
	FactoryID id.ID `json:"factoryId" db:"factory_id"`
}

// New creates a usage entry with a fresh identifier and timestamps.
func New(kind product.Kind) *Entry {
	return &Entry{
		Document: entity.NewDocument(),
		Kind:     kind,
	}
}

func (e *Entry) Validate(ctx context.Context) error {
	if err := e.Document.Validate(ctx); err != nil {
		return err
	}
	if !e.Quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("quantity", e.Quantity.String())
	}
	if !e.Kind.Valid() {
		return apperror.NewValidation("unknown product kind").
			WithDetail("kind", string(e.Kind))
	}
	if id.IsNil(e.ProductID) {
		return apperror.NewValidation("product is required")
	}
	if id.IsNil(e.FactoryID) {
		return apperror.NewValidation("factory is required")
	}
	return nil
}
